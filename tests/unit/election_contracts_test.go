package unit

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	httptransport "electoral/contexts/civic-governance/election-authority/transport/http"
	contractsv1 "electoral/contracts/gen/events/v1"
	_ "electoral/internal/platform/httpserver/docs"

	"github.com/swaggo/swag"
)

func TestSwaggerDocumentListsImplementedRoutes(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read swagger doc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode swagger doc: %v", err)
	}

	expected := map[string][]string{
		"/v1/elections":                                         {"post", "get"},
		"/v1/elections/{election_id}":                           {"get"},
		"/v1/elections/{election_id}/phase":                     {"get"},
		"/v1/elections/{election_id}/members":                   {"post"},
		"/v1/elections/{election_id}/members/{identity}/status": {"post"},
		"/v1/elections/{election_id}/members/pending":           {"get"},
		"/v1/elections/{election_id}/members/approved":          {"get"},
		"/v1/elections/{election_id}/votes":                     {"post"},
		"/v1/identities":                                        {"post"},
		"/v1/access":                                            {"get"},
		"/v1/access/admin":                                      {"put"},
		"/v1/access/reports":                                    {"put"},
		"/v1/reports-source/elections/{election_id}/voters":     {"get"},
		"/v1/reports-source/elections/{election_id}/candidates": {"get"},
		"/v1/reports-source/identities/{identity}":              {"get"},
		"/v1/reports/elections/{election_id}/voters":            {"get"},
		"/v1/reports/elections/{election_id}/participation":     {"get"},
		"/v1/reports/elections/{election_id}/results":           {"get"},
	}
	for path, methods := range expected {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Fatalf("missing path in swagger doc: %s", path)
		}
		for _, method := range methods {
			if _, ok := ops[method]; !ok {
				t.Fatalf("missing method %s for path %s in swagger doc", method, path)
			}
		}
	}
}

func TestOutboxEventsUseCanonicalEnvelope(t *testing.T) {
	module, _ := newAuthority(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := module.Handler.CreateElectionHandler(ctx, adminID, httptransport.CreateElectionRequest{
		Title:    "Council",
		StartsAt: httptransport.CalendarDate{Year: 2031, Month: 1, Day: 1},
		EndsAt:   httptransport.CalendarDate{Year: 2031, Month: 1, Day: 2},
	}); err != nil {
		t.Fatalf("create election: %v", err)
	}
	register(t, module, voterA, "SECRET-NID")

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 outbox rows, got %d", len(pending))
	}

	var created contractsv1.Envelope
	if err := json.Unmarshal(pending[0].Payload, &created); err != nil {
		t.Fatalf("decode election event: %v", err)
	}
	if created.EventType != "election.created" || created.PartitionKeyPath != "election_id" || created.PartitionKey != "1" {
		t.Fatalf("unexpected election envelope %+v", created)
	}
	if created.SchemaVersion != 1 || created.SourceService != "election-authority" || created.EventID == "" {
		t.Fatalf("unexpected envelope metadata %+v", created)
	}

	var registered contractsv1.Envelope
	if err := json.Unmarshal(pending[1].Payload, &registered); err != nil {
		t.Fatalf("decode identity event: %v", err)
	}
	if registered.EventType != "identity.registered" || registered.PartitionKey != voterA {
		t.Fatalf("unexpected identity envelope %+v", registered)
	}
	if strings.Contains(string(registered.Data), "SECRET-NID") {
		t.Fatalf("national id must not leave the registry: %s", registered.Data)
	}
}
