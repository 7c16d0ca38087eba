package voice

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/voicekit/internal/host"
	"github.com/mattn/go-runewidth"
)

// Column widths of the voice table.
const (
	idWidth     = 15
	nameWidth   = 14
	genderWidth = 7
)

func (v *Voice) list(hc host.Context) Outcome {
	log := hc.Log()

	provider, ok := FirstProvider(hc.CapabilityProviders(host.KindTTS), IsTTSProvider)
	if !ok {
		return fail(log, CapabilityMissing, noTTSMessage)
	}

	voices := provider.Voices()
	log.Info(fmt.Sprintf("Voices from %s:", provider.Metadata().Name))
	log.Info("")
	log.Info(voiceRow("ID", "Name", "Gender", "Description"))
	for _, tv := range voices {
		name := tv.Name
		if name == "" {
			name = tv.ID
		}
		gender := tv.Gender
		if gender == "" {
			gender = "?"
		}
		log.Info(voiceRow(tv.ID, name, gender, tv.Description))
	}
	if len(voices) == 0 {
		log.Info("  (no voices)")
	}

	return succeeded()
}

func voiceRow(id, name, gender, description string) string {
	row := "  " + runewidth.FillRight(id, idWidth) +
		" " + runewidth.FillRight(name, nameWidth) +
		" " + runewidth.FillRight(gender, genderWidth) +
		" " + description
	return strings.TrimRight(row, " ")
}
