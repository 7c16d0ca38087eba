package voice

import (
	"reflect"
)

// IsVoiceMetadata reports whether m carries the required name and version.
func IsVoiceMetadata(m VoiceMetadata) bool {
	return m.Name != "" && m.Version != ""
}

// IsSTTProvider checks that x is a usable STT provider and returns it typed.
func IsSTTProvider(x any) (STTProvider, bool) {
	if isNil(x) {
		return nil, false
	}
	p, ok := x.(STTProvider)
	if !ok {
		return nil, false
	}

	meta, ok := describe(p.Metadata)
	if !ok || !IsVoiceMetadata(meta) {
		return nil, false
	}
	return p, true
}

// IsTTSProvider checks that x is a usable TTS provider, including that every
// voice it offers has an ID, and returns it typed.
func IsTTSProvider(x any) (TTSProvider, bool) {
	if isNil(x) {
		return nil, false
	}
	p, ok := x.(TTSProvider)
	if !ok {
		return nil, false
	}

	meta, ok := describe(p.Metadata)
	if !ok || !IsVoiceMetadata(meta) {
		return nil, false
	}

	voices, ok := describe(p.Voices)
	if !ok {
		return nil, false
	}
	for _, v := range voices {
		if v.ID == "" {
			return nil, false
		}
	}
	return p, true
}

// describe calls a provider accessor, treating a panic as non-conformance.
func describe[T any](fn func() T) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return fn(), true
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
