package tui

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/avrlabs/cattleport/internal/predictor"
)

// copyResult puts the step-3 result card on the system clipboard.
func copyResult(card predictor.ResultCard) error {
	return clipboard.WriteAll(strings.Join(card.Lines(), "\n"))
}
