package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base, "/files/")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	p, err := s.Save(ctx, &SaveRequest{FileName: "Proposal.PDF", Reader: strings.NewReader("hello"), Size: 5})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "2024/03/"))
	assert.True(t, strings.HasSuffix(p, ".pdf"))
	assert.FileExists(t, filepath.Join(base, filepath.FromSlash(p)))
	assert.Equal(t, "/files/"+p, s.GetURL(p))

	rc, err := s.Get(ctx, p)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, s.Delete(ctx, p))
	_, err = os.Stat(filepath.Join(base, filepath.FromSlash(p)))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, s.Delete(ctx, p))
}

func TestLocalStorage_ExtensionFromContentType(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	p, err := s.Save(context.Background(), &SaveRequest{FileName: "report", ContentType: "application/pdf; charset=binary", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(p))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, s.Delete(context.Background(), ".."), ErrInvalidPath)
}

func TestExtensionByContentType(t *testing.T) {
	assert.Equal(t, ".docx", extensionByContentType("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, ".jpg", extensionByContentType("image/jpeg"))
	assert.Equal(t, ".bin", extensionByContentType(""))
}

// readAll 返回目录下的所有普通文件
func readAll(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}
