// Package enhancer provides offline audio enhancement in pure Go.
//
// An [Enhancer] runs a decoded PCM buffer (mono or stereo, one fixed sample
// rate) through a fixed chain of signal-processing stages and returns a
// buffer with the same sample rate, channel count and frame count.
//
// # Features
//
//   - STFT spectral-gate noise reduction, or any injected [NoiseReducer]
//   - Band-pass tonal shaping for vocals, bass, treble and warmth
//   - Frequency-dependent mid/side stereo widening
//   - Three-band dynamics compression
//   - Saturation and mastering filters with final peak normalization
//   - Standalone effects: parametric EQ, reverb, chorus, distortion,
//     vocal isolation, fades and peak/RMS normalization
//   - Optional parallel channel processing and bounded batch processing
//   - Vector kernels via github.com/tphakala/simd
//
// # Quick Start
//
// For one-shot enhancement of a mono signal:
//
//	out, err := enhancer.EnhanceMono(samples, 44100, enhancer.Settings{
//	    BassBoost:   0.5,
//	    Compression: 0.3,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated processing with a reusable enhancer:
//
//	settings, _ := enhancer.GetPreset(enhancer.PresetMusic)
//	e, err := enhancer.New(&enhancer.Config{
//	    SampleRate:     48000,
//	    Settings:       settings,
//	    EnableParallel: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := e.Process(buf)
//
// # Stage Order
//
// Stages always run in this order, followed by peak normalization to 0.95:
//
//	noise_reduction -> vocal_enhance -> bass_boost -> treble_enhance ->
//	stereo_enhance -> warmth_filter -> compression -> mastering
//
// Each intensity is in [0, 1]. A stage at intensity 0 is skipped and leaves
// the signal bit-exact. When every stage is disabled the input comes back
// unchanged, without normalization. A stage that fails or panics is logged
// through [Config.Logger] at warning level and its input is forwarded to
// the next stage; only a malformed buffer aborts processing.
//
// Band plans are written for 44.1 kHz. At lower rates, bands whose lower
// edge lies above 0.9 of Nyquist are dropped and upper edges are pulled
// down to that limit.
//
// # Thread Safety
//
// An [Enhancer] holds no per-call state. It is safe for concurrent use, and
// [Enhancer.ProcessBatch] runs several buffers at once.
package enhancer
