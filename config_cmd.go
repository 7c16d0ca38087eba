package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# log debug output
debug: false
# sample rate assumed for raw .pcm/.raw files sent for transcription
input_sample_rate: 16000

# Bundled providers. The first usable provider of a kind wins, in the order
# plugins, openai, google, whisper, piper.
providers:
  # OpenAI speech-to-text and text-to-speech (needs OPENAI_API_KEY)
  openai:
    enabled: true
    # api_key: "sk-..."
    # base_url: "https://api.openai.com/v1"
    stt_model: "whisper-1"
    tts_model: "tts-1"
    # pcm, mp3, wav, opus, flac or aac
    response_format: "pcm"
    # voices: [alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer]
    timeout: "60s"

  # Google Cloud Speech-to-Text (application default credentials)
  google:
    enabled: false
    # credentials_file: "~/.config/gcloud/voicekit.json"
    language: "en-US"
    # model: "latest_long"
    timeout: "60s"

  # whisper HTTP server with a multipart /transcribe endpoint
  whisper:
    enabled: false
    url: "http://localhost:8080"
    timeout: "120s"

  # Piper offline text-to-speech
  piper:
    enabled: false
    binary: "piper"
    timeout: "30s"
    voices:
      # - id: "amy"
      #   name: "Amy"
      #   gender: "female"
      #   model: "~/.local/share/piper/en_US-amy-medium.onnx"

# External capability plugins
plugins:
  # - name: "my-stt"
  #   command: "~/bin/my-stt-plugin"
  #   kinds: ["stt"]
  #   timeout: "30s"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the voicekit config file",
	Long:    paragraph(fmt.Sprintf("\n%s the voicekit config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("voicekit config\nvoicekit config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("voicekit", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
