package scheduler

import (
	"errors"
	"testing"
)

const testHeader = "PARTITION AVAIL CPUS CPUS(A/I/O/T) DEFAULTTIME FREE_MEM MEMORY"

func TestParseNodeTable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Node
	}{
		{
			name: "well-formed row",
			raw:  testHeader + "\nnode01 up 16 2/14 1-00:00:00 2000 8000\n",
			want: []Node{{
				Name:          "node01",
				Available:     "up",
				TotalCPUs:     16,
				CPUState:      CPUState{Allocated: 2, Idle: 14},
				TimeLimit:     "1-00:00:00",
				FreeMemoryMB:  2000,
				TotalMemoryMB: 8000,
			}},
		},
		{
			name: "plus suffixes stripped and non-numeric cells zeroed",
			raw:  testHeader + "\ngpu down 32+ 0/0 2:00:00 abc 64000+",
			want: []Node{{
				Name:          "gpu",
				Available:     "down",
				TotalCPUs:     32,
				TimeLimit:     "2:00:00",
				FreeMemoryMB:  0,
				TotalMemoryMB: 64000,
			}},
		},
		{
			name: "four-part cpu state keeps allocated and idle",
			raw:  testHeader + "\nbatch up 64 8/56/0/64 infinite 1000 256000",
			want: []Node{{
				Name:          "batch",
				Available:     "up",
				TotalCPUs:     64,
				CPUState:      CPUState{Allocated: 8, Idle: 56},
				TimeLimit:     "infinite",
				FreeMemoryMB:  1000,
				TotalMemoryMB: 256000,
			}},
		},
		{
			name: "short row defaults missing fields and later rows still parse",
			raw:  testHeader + "\nshort up 8\nnode02 up 4 0/4 30:00 100 200\n",
			want: []Node{
				{Name: "short", Available: "up", TotalCPUs: 8},
				{
					Name:          "node02",
					Available:     "up",
					TotalCPUs:     4,
					CPUState:      CPUState{Allocated: 0, Idle: 4},
					TimeLimit:     "30:00",
					FreeMemoryMB:  100,
					TotalMemoryMB: 200,
				},
			},
		},
		{
			name: "blank lines and CRLF endings",
			raw:  testHeader + "\r\n\r\nnode01 up 16 2/14 1-00:00:00 2000 8000\r\n\n",
			want: []Node{{
				Name:          "node01",
				Available:     "up",
				TotalCPUs:     16,
				CPUState:      CPUState{Allocated: 2, Idle: 14},
				TimeLimit:     "1-00:00:00",
				FreeMemoryMB:  2000,
				TotalMemoryMB: 8000,
			}},
		},
		{
			name: "extra columns ignored",
			raw:  testHeader + "\nnode01 up 16 2/14 1-00:00:00 2000 8000 extra",
			want: []Node{{
				Name:          "node01",
				Available:     "up",
				TotalCPUs:     16,
				CPUState:      CPUState{Allocated: 2, Idle: 14},
				TimeLimit:     "1-00:00:00",
				FreeMemoryMB:  2000,
				TotalMemoryMB: 8000,
			}},
		},
		{
			name: "header only",
			raw:  testHeader + "\n",
			want: nil,
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNodeTable(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d nodes, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("node[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseNodeTableKeepsOrderAndUnavailable(t *testing.T) {
	raw := testHeader + "\n" +
		"zeta drain 4 0/4 1:00:00 10 20\n" +
		"alpha up 8 4/4 1:00:00 10 20\n" +
		"mid down 2 0/0 1:00:00 10 20\n"

	nodes := ParseNodeTable(raw)
	want := []string{"zeta", "alpha", "mid"}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, name := range want {
		if nodes[i].Name != name {
			t.Errorf("nodes[%d].Name = %q, want %q", i, nodes[i].Name, name)
		}
	}
	if nodes[0].IsUp() || !nodes[1].IsUp() || nodes[2].IsUp() {
		t.Errorf("unexpected availability flags: %+v", nodes)
	}
}

func TestFreePercent(t *testing.T) {
	tests := []struct {
		state CPUState
		want  int
	}{
		{CPUState{Allocated: 0, Idle: 0}, 0},
		{CPUState{Allocated: 0, Idle: 8}, 100},
		{CPUState{Allocated: 2, Idle: 14}, 100},
		{CPUState{Allocated: 14, Idle: 2}, 14},
		{CPUState{Allocated: 8, Idle: 0}, 0},
		{CPUState{Allocated: 4, Idle: 4}, 100},
	}

	for _, tt := range tests {
		if got := tt.state.FreePercent(); got != tt.want {
			t.Errorf("%+v.FreePercent() = %d, want %d", tt.state, got, tt.want)
		}
	}
}

func TestSelectNode(t *testing.T) {
	nodes := ParseNodeTable(testHeader + "\nfirst up 1 0/1 1:00 1 1\nsecond up 1 0/1 1:00 1 1\n")

	if _, err := SelectNode(nil, 1); !errors.Is(err, ErrNoNodes) {
		t.Errorf("SelectNode(nil) error = %v, want ErrNoNodes", err)
	}

	for _, index := range []int{0, -1, 3} {
		_, err := SelectNode(nodes, index)
		var se *SelectionError
		if !errors.As(err, &se) {
			t.Errorf("SelectNode(%d) error = %v, want SelectionError", index, err)
		}
	}

	got, err := SelectNode(nodes, 1)
	if err != nil || got.Name != "first" {
		t.Errorf("SelectNode(1) = %q, %v; want first", got.Name, err)
	}
	got, err = SelectNode(nodes, 2)
	if err != nil || got.Name != "second" {
		t.Errorf("SelectNode(2) = %q, %v; want second", got.Name, err)
	}
}
