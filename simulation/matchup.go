package simulation

import "github.com/mbutler/baseball-simulator-sub000/models"

// PrepareMatchups precomputes one base distribution per lineup slot against
// the opposing starter. Fatigue and situational adjustments are applied at
// at-bat time on a copy, so the precomputed slice stays valid for the whole
// outing.
func PrepareMatchups(lineup []models.Batter, pitcher *models.Pitcher, tun models.Tunables) []models.Distribution {
	dists := make([]models.Distribution, len(lineup))
	for i := range lineup {
		dists[i] = ComputeProbabilities(&lineup[i], pitcher, nil, tun)
	}
	return dists
}
