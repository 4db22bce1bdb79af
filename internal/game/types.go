// internal/game/types.go
//
// Core type definitions for the spelling session engine.
// Defines:
//   - State: coarse session state (starting/awaiting/solved/complete).
//   - EffectKind + Effect: side-effect requests the engine hands to the UI.

package game

import "github.com/hmongspell/go-server/internal/words"

// State represents where a session is in its lifecycle.
// Possible values:
//   - "starting": session created, first word not yet presented.
//   - "awaiting": a word is displayed and the engine waits for attempts.
//   - "solved":   the current word was just spelled (transient; the engine
//                 advances immediately).
//   - "complete": the pool is exhausted; terminal.
type State string

const (
	StateStarting State = "starting"
	StateAwaiting State = "awaiting"
	StateSolved   State = "solved"
	StateComplete State = "complete"
)

// EffectKind names one outbound request to the UI layer.
type EffectKind string

const (
	EffectDisplayWord  EffectKind = "displayWord"     // show picture + answer slots
	EffectPlayLetter   EffectKind = "playLetterSound" // voice the just-placed letter
	EffectPlayWord     EffectKind = "playWordAudio"   // speak the whole word
	EffectCelebration  EffectKind = "showCelebration" // confetti burst over the slots
	EffectRejected     EffectKind = "rejected"        // slots full but wrong
	EffectSessionEnded EffectKind = "sessionEnded"    // hand control back to the UI
)

// Effect is a single fire-and-forget notification. DelayMs is relative to
// the engine call that produced the batch; the UI owns actual scheduling and
// must tolerate effects arriving after the session was abandoned.
type Effect struct {
	Kind      EffectKind     `json:"kind"`
	DelayMs   int64          `json:"delayMs"`
	Language  words.Language `json:"language,omitempty"`
	Letter    string         `json:"letter,omitempty"`
	WordID    string         `json:"wordId,omitempty"`
	PictureID string         `json:"pictureId,omitempty"`
	SlotCount int            `json:"slotCount,omitempty"`
}
