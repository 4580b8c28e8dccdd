package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// GenomeRecord is the persistent form of a genome: the raw gene vector plus
// lineage bookkeeping. ParentID is empty for randomly constructed genomes.
type GenomeRecord struct {
	VersionedRecord
	ID           string    `json:"id"`
	ParentID     string    `json:"parent_id,omitempty"`
	Generation   int       `json:"generation"`
	NeuronCount  int       `json:"neuron_count"`
	Genes        []float64 `json:"genes"`
	CreatedAtUTC string    `json:"created_at_utc"`
}

// RunRecord summarizes one simulation of an expressed genome.
type RunRecord struct {
	VersionedRecord
	ID           string    `json:"id"`
	GenomeID     string    `json:"genome_id"`
	Steps        int       `json:"steps"`
	Inputs       []float64 `json:"inputs,omitempty"`
	FinalState   []float64 `json:"final_state"`
	StateMean    float64   `json:"state_mean"`
	StateStdDev  float64   `json:"state_std_dev"`
	CreatedAtUTC string    `json:"created_at_utc"`
}
