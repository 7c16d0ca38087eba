package voice

const (
	noSTTMessage = "No STT provider available."
	noTTSMessage = "No TTS provider available."

	// Config snippets for an external plugin, in voicekit.yml syntax.
	sttPluginSnippet = "plugins: [{name: my-stt, command: /path/to/plugin, kinds: [stt]}]"
	ttsPluginSnippet = "plugins: [{name: my-tts, command: /path/to/plugin, kinds: [tts]}]"
)

var sttHints = []string{
	"Enable a speech-to-text provider in voicekit.yml (voicekit config):",
	"  providers.openai   OpenAI Whisper (cloud, needs OPENAI_API_KEY)",
	"  providers.google   Google Cloud Speech (cloud, needs application default credentials)",
	"  providers.whisper  whisper.cpp HTTP server (local)",
	"Or install an external plugin: " + sttPluginSnippet,
}

var ttsHints = []string{
	"Enable a text-to-speech provider in voicekit.yml (voicekit config):",
	"  providers.openai   OpenAI TTS (cloud, needs OPENAI_API_KEY)",
	"  providers.piper    Piper voices (local, needs the piper binary and a model)",
	"Or install an external plugin: " + ttsPluginSnippet,
}
