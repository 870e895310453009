// Package dataset accumulates the (state, turn, action) records produced by
// self-play and serializes them as the training dataset document.
package dataset

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Recorder collects one record per search-chosen move: the board before the
// move, whose turn it was and which cell was played. Records stay in memory
// until Save; there is no partial flush.
//
// Not safe for concurrent writers: self-play is single-threaded by contract.
type Recorder struct {
	boards  []state.Board
	movers  []state.Player
	actions []int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one transition: before is the board the move was chosen on,
// action the cell index played. The mover is read off the board.
func (r *Recorder) Record(before state.Board, action int) {
	r.boards = append(r.boards, before)
	r.movers = append(r.movers, before.Turn())
	r.actions = append(r.actions, action)
}

// Len returns how many records were collected.
func (r *Recorder) Len() int {
	return len(r.boards)
}

// Document is the serialized form of the dataset: three parallel sequences
// indexed in lockstep. State[i] holds the 9 cell codes of the board before
// move i, Turn[i] the mover's code and Action[i] the cell played.
type Document struct {
	State  [][]string `json:"State"`
	Turn   []string   `json:"Turn"`
	Action []int      `json:"Action"`
}

// playerCode maps a mark to its dataset code: empty (or no mover) "0",
// X "1", O "-1".
func playerCode(p state.Player) string {
	switch p {
	case state.PlayerNone:
		return "0"
	case state.PlayerX:
		return "1"
	case state.PlayerO:
		return "-1"
	}
	exceptions.Panicf("dataset: cannot encode invalid player %d", uint8(p))
	return ""
}

// Document materializes the collected records. The sequences are never nil,
// so an empty batch serializes as [] and not null.
func (r *Recorder) Document() Document {
	doc := Document{
		State:  make([][]string, 0, len(r.boards)),
		Turn:   make([]string, 0, len(r.movers)),
		Action: make([]int, 0, len(r.actions)),
	}
	for i, board := range r.boards {
		cells := board.Cells()
		doc.State = append(doc.State, generics.SliceMap(cells[:], playerCode))
		doc.Turn = append(doc.Turn, playerCode(r.movers[i]))
		doc.Action = append(doc.Action, r.actions[i])
	}
	return doc
}

// Encode writes the dataset document to w as JSON with 2-space indentation.
func (r *Recorder) Encode(w io.Writer) error {
	encoded, err := json.MarshalIndent(r.Document(), "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode dataset with %d records", r.Len())
	}
	encoded = append(encoded, '\n')
	if _, err := w.Write(encoded); err != nil {
		return errors.Wrapf(err, "failed to write encoded dataset")
	}
	return nil
}

// Save writes the dataset document to the given path. It writes to a
// temporary file in the same directory first and renames it over the target,
// so an interrupted save never leaves a half-written dataset behind.
func (r *Recorder) Save(path string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		// A bare filename must keep its temporary next to the target:
		// os.CreateTemp("", ...) would pick the system temp directory, and the
		// rename fails when that lives on another device.
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file to save dataset in %q", path)
	}
	if err := r.Encode(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to close temporary dataset file %q", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to move saved dataset into %q", path)
	}
	klog.V(1).Infof("Saved %d dataset records to %q", r.Len(), path)
	return nil
}
