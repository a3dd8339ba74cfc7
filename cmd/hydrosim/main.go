// hydrosim floats a procedurally generated hull in a configured fluid and
// reports the equilibrium the solver converges to.
package main

import (
	"flag"
	"os"

	"github.com/akmonengine/hydrostat"
	"github.com/akmonengine/hydrostat/internal/config"
	"github.com/akmonengine/hydrostat/internal/logger"
	"github.com/akmonengine/hydrostat/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init("info", "")
		logger.Log.Error("invalid configuration", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	hull := buildHull(cfg.Hull)
	logger.Log.Info("hull generated",
		zap.String("shape", cfg.Hull.Shape),
		zap.Int("triangles", hull.TriangleCount()),
		zap.Float64("volume", mesh.Integrate(hull).Volume),
		zap.Float64("density", cfg.Hull.Density),
	)

	world := hydrostat.NewWorld(hydrostat.Environment{
		FluidDensity: cfg.Simulation.FluidDensity,
		Gravity:      cfg.Simulation.Gravity,
	})
	world.Workers = cfg.Simulation.Workers

	body := hydrostat.NewBody(hull, cfg.Hull.Density)
	body.Id = "hull"
	world.AddBody(body)

	for _, load := range cfg.Loads {
		id := body.AddLoad(hydrostat.Load{
			Mass:     load.Mass,
			Position: mgl64.Vec3{load.X, load.Y, load.Z},
		})
		logger.Log.Info("load attached",
			zap.Uint64("id", uint64(id)),
			zap.Float64("mass", load.Mass),
			zap.Float64s("position", []float64{load.X, load.Y, load.Z}),
		)
	}

	subscribeEvents(world)

	reportEvery := cfg.Simulation.TickRate // once per simulated second
	for tick := 1; tick <= cfg.Simulation.Ticks; tick++ {
		world.Step()

		if tick%reportEvery == 0 {
			logState(body, tick)
		}
	}

	result, ok := body.Result()
	if !ok {
		logger.Log.Warn("simulation produced no result")
		return
	}
	logger.Log.Info("simulation finished",
		zap.Int("ticks", cfg.Simulation.Ticks),
		zap.Float64("draft", -result.Displacement),
		zap.Float64("pitch", result.Pitch),
		zap.Float64("roll", result.Roll),
		zap.Float64("submerged_fraction", result.SubmergedVolume/body.Properties().Volume),
		zap.Bool("settled", body.IsSettled),
	)
}

func buildHull(cfg config.HullConfig) *mesh.Mesh {
	if cfg.Shape == "sphere" {
		return mesh.Sphere(cfg.Radius, cfg.Detail, cfg.Detail/2)
	}
	return mesh.Box(cfg.Width, cfg.Length, cfg.Height)
}

func subscribeEvents(world *hydrostat.World) {
	world.Events.Subscribe(hydrostat.ON_SETTLE, func(event hydrostat.Event) {
		body := event.(hydrostat.SettleEvent).Body
		result, _ := body.Result()
		logger.Log.Info("body settled",
			zap.Any("body", body.Id),
			zap.Float64("displacement", result.Displacement),
			zap.Float64("submerged_volume", result.SubmergedVolume),
		)
	})
	world.Events.Subscribe(hydrostat.ON_DISTURB, func(event hydrostat.Event) {
		logger.Log.Info("body disturbed", zap.Any("body", event.(hydrostat.DisturbEvent).Body.Id))
	})
	world.Events.Subscribe(hydrostat.ON_SUBMERGE, func(event hydrostat.Event) {
		logger.Log.Warn("body fully submerged", zap.Any("body", event.(hydrostat.SubmergeEvent).Body.Id))
	})
	world.Events.Subscribe(hydrostat.ON_SURFACE, func(event hydrostat.Event) {
		logger.Log.Info("body left the water", zap.Any("body", event.(hydrostat.SurfaceEvent).Body.Id))
	})
}

func logState(body *hydrostat.Body, tick int) {
	result, ok := body.Result()
	if !ok {
		return
	}
	logger.Log.Debug("tick",
		zap.Int("n", tick),
		zap.Float64("z", result.Displacement),
		zap.Float64("pitch", result.Pitch),
		zap.Float64("roll", result.Roll),
		zap.Float64("submerged", result.SubmergedVolume),
		zap.Float64s("cob", result.CenterOfBuoyancy[:]),
		zap.Float64s("cog", result.CenterOfGravity[:]),
	)
}
