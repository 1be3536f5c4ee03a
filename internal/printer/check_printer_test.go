package printer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shepherd-platform/shepctl/internal/compose"
)

func TestCheckPrinter_Item(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		check    compose.Check
		expected string
	}{
		{
			name: "passing check",
			check: compose.Check{
				Name:   "docker binary",
				Status: compose.CheckOK,
				Detail: "/usr/bin/docker",
			},
			expected: "[ok]   docker binary    /usr/bin/docker\n",
		},
		{
			name: "degraded check",
			check: compose.Check{
				Name:   "host memory",
				Status: compose.CheckWarn,
				Detail: "1.5 GiB total, below the 2 GiB minimum",
			},
			expected: "[warn] host memory      1.5 GiB total, below the 2 GiB minimum\n",
		},
		{
			name: "failing check",
			check: compose.Check{
				Name:   "docker daemon",
				Status: compose.CheckFail,
				Detail: "connection refused",
			},
			expected: "[fail] docker daemon    connection refused\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printer := &CheckPrinter{}

			err := printer.Item(&buf, tc.check)
			require.NoError(t, err)

			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestCheckPrinter_HeaderFooter(t *testing.T) {
	t.Parallel()

	t.Run("no header when not set", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printer := &CheckPrinter{}

		printer.Header(&buf, 1)
		require.Empty(t, buf.String())
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printer := &CheckPrinter{}

		printer.SetHeader(func(w io.Writer, count int) {
			_, _ = w.Write([]byte("checks:\n"))
		})

		printer.Header(&buf, 1)
		require.Equal(t, "checks:\n", buf.String())
	})

	t.Run("custom footer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printer := &CheckPrinter{}

		printer.SetFooter(func(w io.Writer, count int) {
			_, _ = w.Write([]byte("2 checks\n"))
		})

		printer.Footer(&buf, 2)
		require.Equal(t, "2 checks\n", buf.String())
	})
}
