package electionauthority

import (
	"log/slog"

	"electoral/contexts/civic-governance/election-authority/adapters/calendar"
	httpadapter "electoral/contexts/civic-governance/election-authority/adapters/http"
	"electoral/contexts/civic-governance/election-authority/adapters/memory"
	"electoral/contexts/civic-governance/election-authority/application/commands"
	"electoral/contexts/civic-governance/election-authority/application/queries"
	"electoral/contexts/civic-governance/election-authority/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections  ports.ElectionRepository
	Identities ports.IdentityRepository
	Access     ports.AccessRepository
	Calendar   ports.Calendar
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	if deps.Calendar == nil {
		deps.Calendar = calendar.Gregorian{}
	}
	return Module{
		Handler: httpadapter.Handler{
			Elections: commands.ElectionUseCase{
				Elections:  deps.Elections,
				Identities: deps.Identities,
				Access:     deps.Access,
				Calendar:   deps.Calendar,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Registry: commands.RegistryUseCase{
				Identities: deps.Identities,
				Access:     deps.Access,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Access: commands.AccessUseCase{
				Access: deps.Access,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Queries: queries.ElectionQueries{
				Elections: deps.Elections,
				Access:    deps.Access,
				Clock:     deps.Clock,
			},
			ReportSources: queries.ReportSourceUseCase{
				Elections:  deps.Elections,
				Identities: deps.Identities,
				Access:     deps.Access,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(admin string, logger *slog.Logger) Module {
	store := memory.NewStore(admin)
	module := NewModule(Dependencies{
		Elections:  store,
		Identities: store,
		Access:     store,
		Calendar:   calendar.Gregorian{},
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
