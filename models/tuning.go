package models

// Tunables collects every league constant and design parameter the engine
// uses. The defaults come from playtesting, not first principles; callers
// that want a different run environment adjust a copy of DefaultTunables.
type Tunables struct {
	// League-average rates substituted for nil or garbage player rates
	LeagueStrikeoutRate float64 `json:"league_k_rate"`
	LeagueWalkRate      float64 `json:"league_bb_rate"`
	LeagueHomeRunRate   float64 `json:"league_hr_rate"`
	LeagueBABIP         float64 `json:"league_babip"`

	// Matchup BABIP is clamped to this band
	BABIPFloor float64 `json:"babip_floor"`
	BABIPCeil  float64 `json:"babip_ceil"`

	// League hit-type shape used when a batter has no recorded hits
	LeagueSingleShare float64 `json:"league_single_share"`
	LeagueDoubleShare float64 `json:"league_double_share"`
	LeagueTripleShare float64 `json:"league_triple_share"`

	// Situational nudge coefficients (absolute probability mass moved
	// toward outs)
	RISPPressureShift float64 `json:"risp_pressure_shift"`
	TwoOutShift       float64 `json:"two_out_shift"`
	LateCloseShift    float64 `json:"late_close_shift"`

	// Pitcher fatigue: past FatigueThreshold batters faced, mass shifts
	// from Out toward BB and 1B, growing per extra batter up to the cap.
	// Out is never pushed below half its original value.
	FatigueThreshold      int     `json:"fatigue_threshold"`
	FatigueShiftPerBatter float64 `json:"fatigue_shift_per_batter"`
	FatigueShiftCap       float64 `json:"fatigue_shift_cap"`

	// Ball-in-play sub-resolution
	ErrorFallbackRate  float64 `json:"error_fallback_rate"`
	DoublePlayBaseRate float64 `json:"double_play_base_rate"`
	DoublePlayCap      float64 `json:"double_play_cap"`
	TriplePlayBaseRate float64 `json:"triple_play_base_rate"`
	FieldingBonusCap   float64 `json:"fielding_bonus_cap"`

	// Passed balls on strikeouts and walks
	PassedBallBaseRate float64 `json:"passed_ball_base_rate"`
	PassedBallMaxRate  float64 `json:"passed_ball_max_rate"`

	// Baserunning stretch chances (extra base on a single from second,
	// scoring from first on a double), scaled by runner ratings
	StretchChanceScale float64 `json:"stretch_chance_scale"`

	// Stolen base attempt resolution
	StealBaseSecond   float64 `json:"steal_base_second"`
	StealBaseThird    float64 `json:"steal_base_third"`
	StealBaseHome     float64 `json:"steal_base_home"`
	StealThirdPenalty float64 `json:"steal_third_penalty"`
	StealHomePenalty  float64 `json:"steal_home_penalty"`
	StealFloor        float64 `json:"steal_floor"`
	StealCeil         float64 `json:"steal_ceil"`

	// Pickoff attempt resolution
	PickoffFloor      float64 `json:"pickoff_floor"`
	PickoffCeil       float64 `json:"pickoff_ceil"`
	PickoffErrorFloor float64 `json:"pickoff_error_floor"`
	PickoffErrorCeil  float64 `json:"pickoff_error_ceil"`

	// Driver-side attempt rates between at-bats
	StealAttemptRate   float64 `json:"steal_attempt_rate"`
	PickoffAttemptRate float64 `json:"pickoff_attempt_rate"`
}

// DefaultTunables returns the standard run environment
func DefaultTunables() Tunables {
	return Tunables{
		LeagueStrikeoutRate: 0.22,
		LeagueWalkRate:      0.08,
		LeagueHomeRunRate:   0.03,
		LeagueBABIP:         0.29,

		BABIPFloor: 0.27,
		BABIPCeil:  0.33,

		LeagueSingleShare: 0.70,
		LeagueDoubleShare: 0.20,
		LeagueTripleShare: 0.10,

		RISPPressureShift: 0.010,
		TwoOutShift:       0.010,
		LateCloseShift:    0.005,

		FatigueThreshold:      18,
		FatigueShiftPerBatter: 0.02,
		FatigueShiftCap:       0.25,

		ErrorFallbackRate:  0.01,
		DoublePlayBaseRate: 0.25,
		DoublePlayCap:      0.60,
		TriplePlayBaseRate: 0.01,
		FieldingBonusCap:   0.05,

		PassedBallBaseRate: 0.005,
		PassedBallMaxRate:  0.03,

		StretchChanceScale: 0.40,

		StealBaseSecond:   0.60,
		StealBaseThird:    0.30,
		StealBaseHome:     0.10,
		StealThirdPenalty: 0.15,
		StealHomePenalty:  0.35,
		StealFloor:        0.05,
		StealCeil:         0.95,

		PickoffFloor:      0.01,
		PickoffCeil:       0.15,
		PickoffErrorFloor: 0.01,
		PickoffErrorCeil:  0.20,

		StealAttemptRate:   0.06,
		PickoffAttemptRate: 0.03,
	}
}
