package electionreporting

import (
	"log/slog"

	httpadapter "electoral/contexts/civic-governance/election-reporting/adapters/http"
	"electoral/contexts/civic-governance/election-reporting/application/queries"
	"electoral/contexts/civic-governance/election-reporting/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Source ports.ElectionSource
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Reports: queries.ReportUseCase{
				Source: deps.Source,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}
