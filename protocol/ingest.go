package protocol

import "fmt"

// Ingest — raw annotation validation and model construction
//
// Description:
//
//	Ingest turns the three raw annotation structures of an Axon recording
//	into the immutable Descriptor model. It is a pure transform: no I/O,
//	no retained references into the input, and on failure no partial
//	model escapes.
//
// Validation outline:
//  1. Protocol flags: RunsPerTrial ≥ 1, EpisodesPerRun ≥ 1.
//  2. EpochInfo list (the global active-epoch set): epoch numbers within
//     0–9 and unique; all four digital codes within 0–15; register labels
//     recognized ("#3-0", "#7-4", or empty for the low bank).
//  3. Per-DAC epoch tables, primary then alternate: epoch numbers within
//     0–9 and unique per channel; nDACNum consistent with the owning
//     table key; epoch type code one of the six known values; every epoch
//     number present in the global active-epoch set (orphaned DAC epochs
//     are rejected); non-negative initial duration; positive pulse period
//     for periodic shapes; PulsePeriod ≥ PulseWidth for pulse trains when
//     both are nonzero.
//  4. An alternate table for a channel without a primary table is
//     rejected; channels whose primary table is empty are dropped
//     (waveform output disabled).
//  5. Holding levels from listDACInfo are attached to matching channels;
//     entries for unknown channels are ignored.
//
// Errors:
//   - ErrMalformedProtocol — any violation above.
//   - ErrUnknownEpochType  — unrecognized nEpochType code (also matches
//     ErrMalformedProtocol).
func Ingest(raw Annotations) (*Descriptor, error) {
	if raw.Protocol.RunsPerTrial < 1 {
		return nil, fmt.Errorf("%w: lRunsPerTrial = %d, want ≥ 1",
			ErrMalformedProtocol, raw.Protocol.RunsPerTrial)
	}
	if raw.Protocol.EpisodesPerRun < 1 {
		return nil, fmt.Errorf("%w: lEpisodesPerRun = %d, want ≥ 1",
			ErrMalformedProtocol, raw.Protocol.EpisodesPerRun)
	}

	digital, err := ingestDigital(raw.EpochInfo)
	if err != nil {
		return nil, err
	}

	dacs := make(map[int]*DACChannel, len(raw.EpochInfoPerDAC))
	for dacNum, entries := range raw.EpochInfoPerDAC {
		if len(entries) == 0 {
			continue // waveform output disabled on this channel
		}
		epochs, err := ingestEpochSet(dacNum, entries, digital)
		if err != nil {
			return nil, err
		}
		dacs[dacNum] = &DACChannel{ChannelNumber: dacNum, epochs: epochs}
	}

	for dacNum, entries := range raw.AlternateEpochInfoPerDAC {
		ch, ok := dacs[dacNum]
		if !ok {
			return nil, fmt.Errorf("%w: alternate epoch table for DAC %d, which has no primary table",
				ErrMalformedProtocol, dacNum)
		}
		if len(entries) == 0 {
			continue
		}
		alt, err := ingestEpochSet(dacNum, entries, digital)
		if err != nil {
			return nil, err
		}
		ch.altEpochs = alt
	}

	for _, info := range raw.DACInfo {
		if ch, ok := dacs[info.DACNum]; ok {
			ch.HoldingLevel = info.HoldingLevel
		}
	}

	return &Descriptor{
		RunsPerTrial:      raw.Protocol.RunsPerTrial,
		EpisodesPerRun:    raw.Protocol.EpisodesPerRun,
		AlternateAnalog:   raw.Protocol.AlternateDACOutputState == 1,
		AlternateDigital:  raw.Protocol.AlternateDigitalOutputState == 1,
		DigitalDACChannel: raw.Protocol.DigitalDACChannel,
		TrainActiveLogic:  raw.Protocol.DigitalTrainActiveLogic == 1,
		dacs:              dacs,
		digital:           digital,
	}, nil
}

// ingestDigital validates the EpochInfo list and keys it by epoch number.
func ingestDigital(infos []RawEpochInfo) (map[int]EpochDigitalInfo, error) {
	digital := make(map[int]EpochDigitalInfo, len(infos))
	for _, ri := range infos {
		if err := checkEpochNumber(ri.EpochNum); err != nil {
			return nil, err
		}
		if _, dup := digital[ri.EpochNum]; dup {
			return nil, fmt.Errorf("%w: duplicate EpochInfo entry for epoch %d",
				ErrMalformedProtocol, ri.EpochNum)
		}

		for name, v := range map[string]int{
			"nDigitalValue":               ri.DigitalValue,
			"nAlternateDigitalValue":      ri.AlternateDigitalValue,
			"nDigitalTrainValue":          ri.DigitalTrainValue,
			"nAlternateDigitalTrainValue": ri.AlternateDigitalTrainValue,
		} {
			if v < 0 || v > 15 {
				return nil, fmt.Errorf("%w: epoch %d: %s = %d, want 0–15",
					ErrMalformedProtocol, ri.EpochNum, name, v)
			}
		}

		reg, ok := parseRegister(ri.Register)
		if !ok {
			return nil, fmt.Errorf("%w: epoch %d: unrecognized register %q",
				ErrMalformedProtocol, ri.EpochNum, ri.Register)
		}
		altReg, ok := parseRegister(ri.AlternateRegister)
		if !ok {
			return nil, fmt.Errorf("%w: epoch %d: unrecognized alternate register %q",
				ErrMalformedProtocol, ri.EpochNum, ri.AlternateRegister)
		}

		digital[ri.EpochNum] = EpochDigitalInfo{
			EpochNumber:                ri.EpochNum,
			Register:                   reg,
			AlternateRegister:          altReg,
			DigitalValue:               ri.DigitalValue,
			AlternateDigitalValue:      ri.AlternateDigitalValue,
			DigitalTrainValue:          ri.DigitalTrainValue,
			AlternateDigitalTrainValue: ri.AlternateDigitalTrainValue,
		}
	}

	return digital, nil
}

// ingestEpochSet validates one per-DAC epoch table against the global
// active-epoch set and keys it by epoch number.
func ingestEpochSet(dacNum int, entries []RawDACEpoch, active map[int]EpochDigitalInfo) (map[int]EpochWaveform, error) {
	epochs := make(map[int]EpochWaveform, len(entries))
	for _, re := range entries {
		if err := checkEpochNumber(re.EpochNum); err != nil {
			return nil, err
		}
		if _, dup := epochs[re.EpochNum]; dup {
			return nil, fmt.Errorf("%w: DAC %d: duplicate epoch %d",
				ErrMalformedProtocol, dacNum, re.EpochNum)
		}
		if re.DACNum != dacNum {
			return nil, fmt.Errorf("%w: DAC %d epoch %d: nDACNum = %d disagrees with owning table",
				ErrMalformedProtocol, dacNum, re.EpochNum, re.DACNum)
		}
		if _, ok := active[re.EpochNum]; !ok {
			return nil, fmt.Errorf("%w: DAC %d epoch %d is absent from the active-epoch list",
				ErrMalformedProtocol, dacNum, re.EpochNum)
		}

		typ, ok := epochTypeFromCode(re.EpochType)
		if !ok {
			return nil, fmt.Errorf("%w: DAC %d epoch %d: nEpochType = %d: %w",
				ErrMalformedProtocol, dacNum, re.EpochNum, re.EpochType, ErrUnknownEpochType)
		}

		if re.InitDuration < 0 {
			return nil, fmt.Errorf("%w: DAC %d epoch %d: lEpochInitDuration = %d, want ≥ 0",
				ErrMalformedProtocol, dacNum, re.EpochNum, re.InitDuration)
		}
		if re.PulsePeriod < 0 || re.PulseWidth < 0 {
			return nil, fmt.Errorf("%w: DAC %d epoch %d: negative pulse timing (%d/%d)",
				ErrMalformedProtocol, dacNum, re.EpochNum, re.PulsePeriod, re.PulseWidth)
		}
		if typ.Periodic() && re.PulsePeriod == 0 {
			return nil, fmt.Errorf("%w: DAC %d epoch %d: %s epoch requires lEpochPulsePeriod ≥ 1",
				ErrMalformedProtocol, dacNum, re.EpochNum, typ)
		}
		if typ.pulsed() && re.PulseWidth != 0 && re.PulsePeriod < re.PulseWidth {
			return nil, fmt.Errorf("%w: DAC %d epoch %d: lEpochPulsePeriod = %d < lEpochPulseWidth = %d",
				ErrMalformedProtocol, dacNum, re.EpochNum, re.PulsePeriod, re.PulseWidth)
		}

		epochs[re.EpochNum] = EpochWaveform{
			EpochNumber:       re.EpochNum,
			DACNumber:         re.DACNum,
			Type:              typ,
			LevelInit:         re.InitLevel,
			LevelIncrement:    re.LevelInc,
			DurationInit:      re.InitDuration,
			DurationIncrement: re.DurationInc,
			PulsePeriod:       re.PulsePeriod,
			PulseWidth:        re.PulseWidth,
		}
	}

	return epochs, nil
}

// checkEpochNumber enforces the 0–9 epoch numbering of the format.
func checkEpochNumber(n int) error {
	if n < 0 || n > 9 {
		return fmt.Errorf("%w: epoch number %d outside 0–9", ErrMalformedProtocol, n)
	}

	return nil
}

// epochTypeFromCode maps the upstream nEpochType code to the internal tag
// set. The wire codes are not dense: 6 is unassigned and 7 is the
// biphasic train.
func epochTypeFromCode(code int) (EpochType, bool) {
	switch code {
	case 1:
		return Step, true
	case 2:
		return Ramp, true
	case 3:
		return PulseTrain, true
	case 4:
		return Triangle, true
	case 5:
		return Cosine, true
	case 7:
		return BiphasicTrain, true
	default:
		return 0, false
	}
}
