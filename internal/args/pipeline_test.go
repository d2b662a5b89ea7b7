package args

import (
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	meta := Meta{BinDir: "/opt/db/bin"}

	tests := map[string]struct {
		argName string
		value   Value
		want    string
	}{
		"string value": {
			argName: "messenger_port",
			value:   String("9022"),
			want:    "-messenger_port=9022",
		},
		"int value": {
			argName: "port",
			value:   Int(15721),
			want:    "-port=15721",
		},
		"true lowers": {
			argName: "messenger_enable",
			value:   Bool(true),
			want:    "-messenger_enable=true",
		},
		"false lowers": {
			argName: "wal_enable",
			value:   Bool(false),
			want:    "-wal_enable=false",
		},
		"bare flag has no equals": {
			argName: "help",
			value:   Flag(),
			want:    "-help",
		},
		"relative path resolves against bin dir": {
			argName: "wal_file_path",
			value:   String("./wal.log"),
			want:    "-wal_file_path=/opt/db/bin/wal.log",
		},
		"parent-relative path keeps the dotdot segment": {
			argName: "wal_file_path",
			value:   String("../wal.log"),
			want:    "-wal_file_path=/opt/db/bin/../wal.log",
		},
		"absolute path passes through": {
			argName: "wal_file_path",
			value:   String("/tmp/wal.log"),
			want:    "-wal_file_path=/tmp/wal.log",
		},
		"plain name passes through": {
			argName: "wal_file_path",
			value:   String("wal.log"),
			want:    "-wal_file_path=wal.log",
		},
		"dotfile name is not treated as relative": {
			argName: "wal_file_path",
			value:   String(".wal.log"),
			want:    "-wal_file_path=.wal.log",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tc := tc
			t.Parallel()

			if got := Render(tc.argName, tc.value, meta); got != tc.want {
				t.Errorf("Render(%q) = %q, want %q", tc.argName, got, tc.want)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	meta := Meta{BinDir: "/opt/db/bin"}
	values := []Value{
		Bool(true),
		Bool(false),
		String("./relative.log"),
		String("plain"),
		Int(42),
		Flag(),
	}

	// The pipeline is a composition of pure steps: rendering the same
	// (value, metadata) pair twice must yield identical tokens.
	for _, v := range values {
		first := Render("opt", v, meta)
		second := Render("opt", v, meta)
		if first != second {
			t.Errorf("Render not deterministic: %q then %q", first, second)
		}
	}
}

func TestLowerBooleans_PassesThroughNonBooleans(t *testing.T) {
	t.Parallel()

	meta := Meta{BinDir: "/opt/db/bin"}
	for _, v := range []Value{String("True"), Int(1), Flag()} {
		got := lowerBooleans(v, meta)
		if got != v {
			t.Errorf("lowerBooleans(%v) = %v, want unchanged", v, got)
		}
	}
}

func TestResolveRelativePaths_OnlyTouchesRelativeStrings(t *testing.T) {
	t.Parallel()

	meta := Meta{BinDir: "/opt/db/bin"}

	if got := resolveRelativePaths(String("./x"), meta); got.s != "/opt/db/bin/x" {
		t.Errorf("relative path = %q, want %q", got.s, "/opt/db/bin/x")
	}
	// ".." segments survive the join: the path stays correct even when the
	// binary directory is reached through a symlink.
	if got := resolveRelativePaths(String("../x"), meta); got.s != "/opt/db/bin/../x" {
		t.Errorf("parent-relative path = %q, want %q", got.s, "/opt/db/bin/../x")
	}
	for _, v := range []Value{String("/abs/x"), String("x"), Int(3), Bool(true), Flag()} {
		if got := resolveRelativePaths(v, meta); got != v {
			t.Errorf("resolveRelativePaths(%v) = %v, want unchanged", v, got)
		}
	}
}
