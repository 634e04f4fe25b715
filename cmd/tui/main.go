// Command tui plays a session in the terminal. Aiming is automatic: fire
// and grenades target the nearest enemy, walls and cryo nodes go on the
// tile the defender faces.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Core-Defense/internal/config"
	"github.com/Garsondee/Core-Defense/internal/game"
	"github.com/Garsondee/Core-Defense/pkg/logger"
)

type session struct {
	sim     *game.Sim
	cfg     game.Balance
	screen  tcell.Screen
	log     logrus.FieldLogger
	facing  game.Tile
	weapon  string
	pending []game.Command
	paused  bool
	status  string
}

func main() {
	var seed int64
	var configPath string
	var logPath string
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "map and wave seed")
	flag.StringVar(&configPath, "config", "", "balance YAML overlay")
	flag.StringVar(&logPath, "log", "core-defense-tui.log", "log file (the terminal is the screen)")
	flag.Parse()

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logger.Init(logFile)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load balance")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("failed to create screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("failed to init screen")
	}

	s := &session{
		sim:    game.NewSim(cfg, game.Seeded(seed), game.WithLogger(log)),
		cfg:    cfg,
		screen: screen,
		log:    log,
		facing: game.Tile{Y: -1},
		weapon: "PISTOL",
	}
	log.WithField("seed", seed).Info("tui session started")
	s.run()
	screen.Fini()

	r := s.sim.Outcome()
	fmt.Println(r.Description)
	fmt.Print(s.sim.Report().Format())
}

func (s *session) run() {
	ticker := time.NewTicker(game.TickDuration)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !s.handle(ev) {
				return
			}
		case <-ticker.C:
			if !s.paused {
				for _, ev := range s.sim.Step(game.TickDuration, game.Input{Commands: s.pending}) {
					if ev.Kind == game.EventCommandRejected {
						s.status = "refused: " + ev.Detail
					}
				}
				s.pending = nil
			}
			w, h := s.screen.Size()
			render(s.screen, s.sim.Snapshot(), s.sim.Map(), w, h, s.status)
			s.screen.Show()
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.move(0, -1)
		case tcell.KeyDown:
			s.move(0, 1)
		case tcell.KeyLeft:
			s.move(-1, 0)
		case tcell.KeyRight:
			s.move(1, 0)
		case tcell.KeyEnter:
			s.queue(game.SkipIntermission{})
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}
	}
	return true
}

func (s *session) handleRune(r rune) bool {
	snap := s.sim.Snapshot()
	ahead := snap.Player.Pos.Add(s.facing.X, s.facing.Y)
	switch r {
	case 'q':
		return false
	case 'w':
		s.move(0, -1)
	case 's':
		s.move(0, 1)
	case 'a':
		s.move(-1, 0)
	case 'd':
		s.move(1, 0)
	case 'p':
		s.paused = !s.paused
	case 'b':
		s.queue(game.BuildWall{At: ahead})
	case 'c':
		s.queue(game.PlaceCryo{At: ahead})
	case 'o':
		s.queue(game.Overcharge{})
	case 'f', ' ':
		if e, ok := nearest(snap); ok {
			if w, armed := s.cfg.Weapon(s.weapon); armed {
				s.queue(game.FireWeapon{Weapon: w, Aim: e.Pixel})
			}
		}
	case 'g':
		if e, ok := nearest(snap); ok {
			s.queue(game.ThrowGrenade{Target: e.Pixel})
		}
	case '1', '2', '3', '4':
		i := int(r - '1')
		if i >= len(s.cfg.Weapons) {
			break
		}
		id := s.cfg.Weapons[i].ID
		owned := false
		for _, u := range snap.Player.Unlocked {
			owned = owned || u == id
		}
		if owned {
			s.weapon = id
			s.status = "weapon " + id
		} else {
			s.queue(game.Purchase{ID: id})
		}
	}
	return true
}

func (s *session) move(dx, dy int) {
	s.facing = game.Tile{X: dx, Y: dy}
	s.queue(game.Move{DX: dx, DY: dy})
}

func (s *session) queue(c game.Command) {
	if !s.paused {
		s.pending = append(s.pending, c)
	}
}

func nearest(snap game.Snapshot) (game.EnemyView, bool) {
	var best game.EnemyView
	bestD := math.Inf(1)
	for _, e := range snap.Enemies {
		if d := snap.Player.Pixel.Dist(e.Pixel); d < bestD {
			best, bestD = e, d
		}
	}
	return best, len(snap.Enemies) > 0
}
