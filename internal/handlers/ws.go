package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/promisenxu/sudoku-server/internal/session"
	"github.com/promisenxu/sudoku-server/internal/sudoku"
)

// wsRequest is one client message on the live connection. Action selects
// the operation; board is required by check, hint and move.
type wsRequest struct {
	Action string       `json:"action"`
	Board  *sudoku.Grid `json:"board,omitempty"`
	Row    int          `json:"row"`
	Col    int          `json:"col"`
	Digit  uint8        `json:"digit"`
}

var errBoardRequired = errors.New("this action requires a board")

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("unable to upgrade connection: ", err)
		return
	}
	defer c.Close()

	for {
		var req wsRequest
		if err := c.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.log.Warn("read: ", err)
			}
			return
		}

		reply, mutated := g.executeWS(s, game, req)
		if mutated {
			if err := g.updateSession(s, game); err != nil {
				g.log.Error("unable to update session: ", err)
				return
			}
		}
		if err := c.WriteJSON(reply); err != nil {
			g.log.Error("write: ", err)
			return
		}
	}
}

// executeWS runs one command against the session's game and returns the
// reply payload plus whether the game state changed.
func (g *GameHandler) executeWS(
	s *session.GameSession, game *sudoku.GameState, req wsRequest,
) (reply any, mutated bool) {
	switch req.Action {
	case "fetch":
		return NewGameSessionDTO(s, game), false

	case "check":
		if req.Board == nil {
			return wrapError(errBoardRequired), false
		}
		incorrect := game.Check(*req.Board)
		if game.Solved && s.EndedAt == nil {
			endedAt := time.Now().UTC()
			s.EndedAt = &endedAt
		}
		return CheckResultDTO{Incorrect: incorrect, Solved: game.Solved}, true

	case "hint":
		if req.Board == nil {
			return wrapError(errBoardRequired), false
		}
		hint, err := g.hint(game, *req.Board)
		if err != nil {
			return wrapError(err), false
		}
		return hint, true

	case "move":
		if req.Board == nil {
			return wrapError(errBoardRequired), false
		}
		move := MoveDTO{Row: req.Row, Col: req.Col, Digit: req.Digit}
		if err := move.Validate(); err != nil {
			return wrapError(err), false
		}
		if req.Board[move.Row][move.Col] != sudoku.Empty {
			return wrapError(errors.New("cell is not empty")), false
		}
		return MoveResultDTO{
			Legal: req.Board.CanPlace(move.Row, move.Col, move.Digit),
		}, false

	case "forfeit":
		game.Reveal()
		if s.EndedAt == nil {
			endedAt := time.Now().UTC()
			s.EndedAt = &endedAt
		}
		return NewGameSessionDTO(s, game), true

	default:
		return wrapError(errors.New("unknown action")), false
	}
}
