package ticketdb

import "testing"

func TestCountQuery(t *testing.T) {
	tests := []struct {
		name  string
		table string
		where string
		want  string
	}{
		{
			name:  "default table",
			table: "Tickets",
			where: "queue = 1 AND status = 'new'",
			want:  "SELECT COUNT(*) FROM Tickets WHERE queue = 1 AND status = 'new'",
		},
		{
			name:  "custom table",
			table: "rt_tickets",
			where: "status != 'deleted'",
			want:  "SELECT COUNT(*) FROM rt_tickets WHERE status != 'deleted'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countQuery(tt.table, tt.where); got != tt.want {
				t.Fatalf("countQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
