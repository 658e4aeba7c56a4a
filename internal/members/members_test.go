package members

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/mocks"
)

var sample = []domain.RegistrationRecord{
	{ID: "1", Name: "张三", Phone: "13800138000", CoursePackage: domain.Package30},
	{ID: "2", Name: "Li", Phone: "13900139000", CoursePackage: domain.Package60},
	{ID: "3", Name: "王小明", Phone: "13700137000", CoursePackage: "PACKAGE_X"},
}

func TestService_ListCaches(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(sample, nil).Once()

	svc := NewService(lister, time.Minute)

	first, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), false)
	require.NoError(t, err)

	require.Equal(t, sample, first)
	require.Equal(t, first, second)
}

func TestService_RefreshBypassesCache(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(sample[:1], nil).Once()
	lister.EXPECT().ListRegistrations(mock.Anything).Return(sample, nil).Once()

	svc := NewService(lister, time.Minute)

	_, err := svc.List(context.Background(), false)
	require.NoError(t, err)

	got, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestService_InvalidateRefetches(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(sample[:2], nil).Once()
	lister.EXPECT().ListRegistrations(mock.Anything).Return(sample, nil).Once()

	svc := NewService(lister, time.Minute)
	_, err := svc.List(context.Background(), false)
	require.NoError(t, err)

	svc.Invalidate(context.Background())

	got, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 3, "a cached list must not hide a new registration")
}

func TestService_ZeroTTLDisablesCache(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(sample, nil).Twice()

	svc := NewService(lister, 0)
	_, _ = svc.List(context.Background(), false)
	_, _ = svc.List(context.Background(), false)
}

func TestService_ErrorPropagates(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(nil, errors.New("503")).Once()

	_, err := NewService(lister, time.Minute).List(context.Background(), false)
	require.EqualError(t, err, "503")
}

func TestRows(t *testing.T) {
	rows := Rows(sample)
	require.Len(t, rows, 3)
	require.Equal(t, 1, rows[0].Index)
	require.Equal(t, []string{"1", "张三", "13800138000", "30课时"}, rows[0].Cells())
	require.Equal(t, "60课时", rows[1].Label)
	require.Equal(t, "PACKAGE_X", rows[2].Label)
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil))
	require.Equal(t, EmptyText+"\n", buf.String())
}

func TestWriteTable_AlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sample))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "序号"))

	// The phone column starts at the same cell offset on every data row.
	var offsets []int
	for _, line := range lines[1:] {
		idx := strings.Index(line, "13")
		require.GreaterOrEqual(t, idx, 0)
		offsets = append(offsets, runewidth.StringWidth(line[:idx]))
	}
	require.Equal(t, offsets[0], offsets[1])
	require.Equal(t, offsets[0], offsets[2])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sample[:2]))

	var rows []Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Equal(t, Rows(sample[:2]), rows)
}
