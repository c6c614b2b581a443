package types

// IngestConfig holds settings for the import pipeline.
type IngestConfig struct {
	// Workers is the number of files parsed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// WorkerCount returns Workers with the default applied.
func (c IngestConfig) WorkerCount() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// StoreConfig holds settings for the citation store.
type StoreConfig struct {
	// DataDir is the base directory for review data; the SQLite
	// database lives at DataDir/screening.db (default "review").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Dir returns DataDir with the default applied.
func (c StoreConfig) Dir() string {
	if c.DataDir == "" {
		return "review"
	}
	return c.DataDir
}

// CriticConfig holds thresholds for the consistency critic. Zero values
// select the defaults, so an empty config is usable as-is.
type CriticConfig struct {
	// SimilarityThreshold is the minimum rationale/abstract lexical
	// overlap before a WEAK_EVIDENCE finding fires (default 0.1).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// SkewThreshold is the maximum allowed absolute deviation between a
	// stratum's inclusion rate and the overall rate (default 0.25).
	SkewThreshold float64 `json:"skew_threshold" yaml:"skew_threshold"`

	// MinStratumSize is the smallest stratum considered for skew
	// analysis (default 5).
	MinStratumSize int `json:"min_stratum_size" yaml:"min_stratum_size"`

	// WordingThreshold is the similarity above which two exclusion
	// rationales count as the same reason worded differently
	// (default 0.7).
	WordingThreshold float64 `json:"wording_threshold" yaml:"wording_threshold"`
}

const (
	defaultSimilarityThreshold = 0.1
	defaultSkewThreshold       = 0.25
	defaultMinStratumSize      = 5
	defaultWordingThreshold    = 0.7
)

// WithDefaults returns the config with defaults applied to zero fields.
func (c CriticConfig) WithDefaults() CriticConfig {
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.SkewThreshold <= 0 {
		c.SkewThreshold = defaultSkewThreshold
	}
	if c.MinStratumSize <= 0 {
		c.MinStratumSize = defaultMinStratumSize
	}
	if c.WordingThreshold <= 0 {
		c.WordingThreshold = defaultWordingThreshold
	}
	return c
}
