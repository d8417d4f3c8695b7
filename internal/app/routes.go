package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/promisenxu/sudoku-server/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.ws, createRand())
	game.Register(a.router)
}
