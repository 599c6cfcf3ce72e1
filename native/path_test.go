package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jni-runtime/errors"
)

func TestFindLibrary(t *testing.T) {
	t.Setenv("JAVA_HOME", "")
	_, err := FindLibrary("")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotInitialized})
	assert.Empty(t, DefaultLibraryPath(""))

	home := t.TempDir()
	candidates := libraryCandidates(home)
	require.Len(t, candidates, 3)

	_, err = FindLibrary(home)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound})
	assert.Equal(t, candidates[0], DefaultLibraryPath(home), "conventional path when nothing exists")

	jre := candidates[1]
	require.NoError(t, os.MkdirAll(filepath.Dir(jre), 0o755))
	require.NoError(t, os.WriteFile(jre, nil, 0o644))

	path, err := FindLibrary(home)
	require.NoError(t, err)
	assert.Equal(t, jre, path)

	t.Setenv("JAVA_HOME", home)
	assert.Equal(t, jre, DefaultLibraryPath(""))
}
