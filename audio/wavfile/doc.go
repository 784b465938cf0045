// Package wavfile loads and stores mono PCM WAV audio for the spectrogram
// tools.
//
// Multi-channel files are averaged down to one channel on load. The file's
// sample rate is returned unchanged; no rate conversion is performed.
package wavfile
