package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	tests := []struct {
		name                  string
		version, date, commit string
		want                  string
	}{
		{
			name: "unset",
			want: "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n",
		},
		{
			name:    "set",
			version: "v1.2.0",
			date:    "2026-01-02",
			commit:  "abc123",
			want:    "Build version: v1.2.0\nBuild date: 2026-01-02\nBuild commit: abc123\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldD, oldC := buildVersion, buildDate, buildCommit
			t.Cleanup(func() { buildVersion, buildDate, buildCommit = oldV, oldD, oldC })
			buildVersion, buildDate, buildCommit = tt.version, tt.date, tt.commit

			var buf bytes.Buffer
			PrintBuildData(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
