package protocol

// Annotations bundles the three raw structures the Axon file reader
// extracts from a recording's protocol section. Field names (carried as
// yaml tags) match the upstream annotation schema byte for byte, so a
// serialized annotation dump unmarshals straight into this type; callers
// holding the reader's in-memory structures fill it directly instead.
//
// The alternate epoch table has no upstream counterpart: it is populated
// only for protocols that define a second, distinct waveform set for odd
// sweeps (see RawProtocol.AlternateDACOutputState).
type Annotations struct {
	// Protocol carries the protocol-level flags.
	Protocol RawProtocol `yaml:"protocol"`

	// EpochInfo lists the active epochs' digital-output records; it is the
	// protocol's global active-epoch list.
	EpochInfo []RawEpochInfo `yaml:"EpochInfo"`

	// EpochInfoPerDAC maps DAC channel number to that channel's epoch
	// waveform table. Only channels with waveform output enabled appear.
	EpochInfoPerDAC map[int][]RawDACEpoch `yaml:"dictEpochInfoPerDAC"`

	// AlternateEpochInfoPerDAC optionally maps DAC channel number to a
	// second waveform table used on odd sweeps under analog alternation.
	AlternateEpochInfoPerDAC map[int][]RawDACEpoch `yaml:"dictAlternateEpochInfoPerDAC"`

	// DACInfo lists per-DAC settings; only the holding level is consumed.
	DACInfo []RawDACInfo `yaml:"listDACInfo"`
}

// RawProtocol mirrors the protocol-level annotation fields.
type RawProtocol struct {
	// RunsPerTrial and EpisodesPerRun must both be ≥ 1.
	RunsPerTrial   int `yaml:"lRunsPerTrial"`
	EpisodesPerRun int `yaml:"lEpisodesPerRun"`

	// AlternateDACOutputState and AlternateDigitalOutputState are 0/1
	// flags enabling odd/even alternation of the analog and digital
	// parameter sets.
	AlternateDACOutputState     int `yaml:"nAlternateDACOutputState"`
	AlternateDigitalOutputState int `yaml:"nAlternateDigitalOutputState"`

	// DigitalDACChannel names the DAC channel tab that carries the
	// digital-output configuration.
	DigitalDACChannel int `yaml:"nDigitalDACChannel"`

	// DigitalTrainActiveLogic is a 0/1 flag selecting the decoding rule
	// for digital train-value codes.
	DigitalTrainActiveLogic int `yaml:"nDigitalTrainActiveLogic"`
}

// RawEpochInfo mirrors one entry of the EpochInfo list. Register fields
// use the Clampex panel labels "#3-0" and "#7-4"; an empty string means
// "#3-0".
type RawEpochInfo struct {
	EpochNum                   int    `yaml:"nEpochNum"`
	DigitalValue               int    `yaml:"nDigitalValue"`
	AlternateDigitalValue      int    `yaml:"nAlternateDigitalValue"`
	DigitalTrainValue          int    `yaml:"nDigitalTrainValue"`
	AlternateDigitalTrainValue int    `yaml:"nAlternateDigitalTrainValue"`
	Register                   string `yaml:"sDigitalRegister"`
	AlternateRegister          string `yaml:"sAlternateDigitalRegister"`
}

// RawDACEpoch mirrors one entry of a per-DAC epoch table. Durations,
// periods and widths are sample counts.
type RawDACEpoch struct {
	EpochNum     int     `yaml:"nEpochNum"`
	DACNum       int     `yaml:"nDACNum"`
	EpochType    int     `yaml:"nEpochType"`
	InitLevel    float64 `yaml:"fEpochInitLevel"`
	LevelInc     float64 `yaml:"fEpochLevelInc"`
	InitDuration int     `yaml:"lEpochInitDuration"`
	DurationInc  int     `yaml:"lEpochDurationInc"`
	PulsePeriod  int     `yaml:"lEpochPulsePeriod"`
	PulseWidth   int     `yaml:"lEpochPulseWidth"`
}

// RawDACInfo mirrors one entry of the listDACInfo annotation.
type RawDACInfo struct {
	DACNum       int     `yaml:"nDACNum"`
	HoldingLevel float64 `yaml:"fDACHoldingLevel"`
}
