package panel

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPanelServiceDesc_MatchesProto keeps the descriptor and the proto definition in step.
func TestPanelServiceDesc_MatchesProto(t *testing.T) {
	t.Parallel()

	require.Equal(t, ProtoFile, PanelServiceDesc.Metadata)

	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "api", "proto", filepath.FromSlash(ProtoFile)))
	require.NoError(t, err)

	src := string(raw)
	require.Contains(t, src, "package briefcase.v1;")
	require.Contains(t, src, "service PanelService {")

	rpcs := regexp.MustCompile(`rpc (\w+)\(`).FindAllStringSubmatch(src, -1)

	declared := make([]string, 0, len(rpcs))
	for _, m := range rpcs {
		declared = append(declared, m[1])
	}

	described := make([]string, 0, len(PanelServiceDesc.Methods))
	for _, m := range PanelServiceDesc.Methods {
		described = append(described, m.MethodName)
	}

	require.Equal(t, declared, described)
}
