package entities

import "testing"

func TestParticipationRoundsDown(t *testing.T) {
	report := NewParticipationReport(1, 3, 2)
	if report.Percentage != 66 {
		t.Fatalf("expected 66, got %d", report.Percentage)
	}
	if got := NewParticipationReport(1, 0, 0).Percentage; got != 0 {
		t.Fatalf("expected 0 for an election without voters, got %d", got)
	}
	if got := NewParticipationReport(1, 4, 4).Percentage; got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestResultReportOrdersByVotesThenIdentity(t *testing.T) {
	report := NewResultReport(7, []ResultEntry{
		{Person: Person{Identity: "0xC"}, Votes: 1},
		{Person: Person{Identity: "0xB"}, Votes: 3},
		{Person: Person{Identity: "0xA"}, Votes: 3},
	})
	if report.TotalVotes != 7 {
		t.Fatalf("expected 7 total votes, got %d", report.TotalVotes)
	}
	order := []string{report.Entries[0].Identity, report.Entries[1].Identity, report.Entries[2].Identity}
	if order[0] != "0xA" || order[1] != "0xB" || order[2] != "0xC" {
		t.Fatalf("unexpected order %v", order)
	}
	if report.Entries[0].Share != 42 || report.Entries[2].Share != 14 {
		t.Fatalf("expected floored shares 42 and 14, got %d and %d", report.Entries[0].Share, report.Entries[2].Share)
	}
}

func TestResultReportWithoutVotes(t *testing.T) {
	report := NewResultReport(1, []ResultEntry{{Person: Person{Identity: "0xA"}}})
	if report.TotalVotes != 0 || report.Entries[0].Share != 0 {
		t.Fatalf("expected zero totals, got %+v", report)
	}
}
