package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/promisenxu/sudoku-server/internal/config"
	"github.com/promisenxu/sudoku-server/internal/middleware"
	"github.com/promisenxu/sudoku-server/internal/session"
	"github.com/promisenxu/sudoku-server/internal/sudoku"
)

type GameHandler struct {
	log      *logrus.Logger
	sessions *session.Store
	ws       *config.WebSocket
	rndMu    sync.Mutex
	rnd      *rand.Rand
}

func NewGameHandler(
	log *logrus.Logger,
	sessions *session.Store,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		ws:       ws,
		rnd:      rnd,
	}
}

func (g *GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game/{id}", g.Fetch)
	mux.HandleFunc("POST /game/{id}/move", g.Move)
	mux.HandleFunc("POST /game/{id}/check", g.Check)
	mux.HandleFunc("POST /game/{id}/hint", g.Hint)
	mux.HandleFunc("POST /game/{id}/forfeit", g.Forfeit)
	mux.HandleFunc("/game/{id}/connect", g.ConnectWS)
}

func (g *GameHandler) newGame(clues int) (*sudoku.GameState, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return sudoku.NewGame(clues, g.rnd)
}

func (g *GameHandler) hint(game *sudoku.GameState, board sudoku.Grid) (sudoku.Hint, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return game.Hint(board, g.rnd)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	clues, err := dto.ResolveClues()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	game, err := g.newGame(clues)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to generate a new game: ", err)
		return
	}

	state, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to encode game state: ", err)
		return
	}

	var playerID *int64
	if claims, ok := middleware.PlayerClaims(r); ok {
		g.log.Debug("creating session for player ", claims.Username)
		playerID = &claims.PlayerId
	} else {
		g.log.Debug("creating anonymous session")
	}

	s := g.sessions.Create(playerID, state)
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s, game))
}

// fetchSession loads the session and its decoded game state, writing the
// appropriate status on failure.
func (g *GameHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*session.GameSession, *sudoku.GameState, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	s, err := g.sessions.Get(sessionId)
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch session: ", err)
		return nil, nil, false
	}

	game, err := sudoku.DecodeGameState(s.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("store returned invalid session state: ", err)
		return nil, nil, false
	}

	return s, game, true
}

func (g *GameHandler) updateSession(
	s *session.GameSession, game *sudoku.GameState,
) error {
	state, err := game.Bytes()
	if err != nil {
		return err
	}
	return g.sessions.Update(s.GameSessionID, state, s.EndedAt)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s, game))
}

// Move answers whether placing a digit on the submitted board would be
// legal. Nothing is stored; this is a pre-submission aid for clients
// validating moves as the player types.
func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	_, _, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	if err := move.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	dto, err := ParseBoardDTO(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	board := dto.Board

	if board[move.Row][move.Col] != sudoku.Empty {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(errors.New("cell is not empty")))
		return
	}

	sendJSONOrLog(w, g.log, MoveResultDTO{
		Legal: board.CanPlace(move.Row, move.Col, move.Digit),
	})
}

func (g *GameHandler) Check(w http.ResponseWriter, r *http.Request) {
	s, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	dto, err := ParseBoardDTO(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	incorrect := game.Check(dto.Board)
	if game.Solved && s.EndedAt == nil {
		endedAt := time.Now().UTC()
		s.EndedAt = &endedAt
	}
	if err := g.updateSession(s, game); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to update session: ", err)
		return
	}

	sendJSONOrLog(w, g.log, CheckResultDTO{
		Incorrect: incorrect,
		Solved:    game.Solved,
	})
}

func (g *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	s, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	dto, err := ParseBoardDTO(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	hint, err := g.hint(game, dto.Board)
	if errors.Is(err, sudoku.ErrNoEmptyCell) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to produce a hint: ", err)
		return
	}

	if err := g.updateSession(s, game); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to update session: ", err)
		return
	}

	sendJSONOrLog(w, g.log, hint)
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	game.Reveal()
	if s.EndedAt == nil {
		endedAt := time.Now().UTC()
		s.EndedAt = &endedAt
	}
	if err := g.updateSession(s, game); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to update session: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(s, game))
}
