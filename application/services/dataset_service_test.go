package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/xinran093/synthesisAI-V2/pkg/errors"
)

const sampleCSV = `Student ID,First name,Comment ID,In response to comment ID,Comment text
s1,Alice,c1,,Graphs reveal discussion structure
s2,Bob,c2,c1,Agreed about graphs
s2,Bob,c3,c1,More thoughts on structure
s1,Alice,c4,c4,Replying to myself
`

func TestDatasetService_IngestCSV(t *testing.T) {
	// Arrange
	svc := NewDatasetService(zap.NewNop(), nil)

	// Act
	data, err := svc.IngestCSV(context.Background(), strings.NewReader(sampleCSV))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, data)

	require.Len(t, data.Network.Nodes, 2)
	assert.Equal(t, "s1", data.Network.Nodes[0].ID)
	assert.Equal(t, "Alice", data.Network.Nodes[0].Name)
	assert.Equal(t, 2, data.Network.Nodes[0].CommentCount)
	assert.Equal(t, "Bob", data.Network.Nodes[1].Name)

	require.Len(t, data.Network.Links, 1)
	assert.Equal(t, "s1", data.Network.Links[0].Source)
	assert.Equal(t, "s2", data.Network.Links[0].Target)
	assert.Equal(t, 2, data.Network.Links[0].Weight)

	assert.Contains(t, data.WordCloudText, "Graphs reveal discussion structure")
	assert.NotEmpty(t, data.Terms)
}

func TestDatasetService_IngestCSV_ReplacesPriorGraph(t *testing.T) {
	// Arrange
	svc := NewDatasetService(zap.NewNop(), nil)
	_, err := svc.IngestCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	second := `Student ID,First name,Comment ID,In response to comment ID,Comment text
s9,Zoe,c1,,A completely new discussion
`

	// Act
	data, err := svc.IngestCSV(context.Background(), strings.NewReader(second))

	// Assert: the old graph is gone wholesale
	require.NoError(t, err)
	require.Len(t, data.Network.Nodes, 1)
	assert.Equal(t, "s9", data.Network.Nodes[0].ID)
	assert.Empty(t, data.Network.Links)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, data, current)
}

func TestDatasetService_IngestCSV_EmptyStreamFailsValidation(t *testing.T) {
	// Arrange
	svc := NewDatasetService(zap.NewNop(), nil)

	// Act
	_, err := svc.IngestCSV(context.Background(), strings.NewReader(""))

	// Assert
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDatasetService_Current_BeforeAnyIngestion(t *testing.T) {
	svc := NewDatasetService(zap.NewNop(), nil)

	data, ok := svc.Current()

	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestDatasetService_IngestCSV_ToleratesRaggedRows(t *testing.T) {
	// Arrange: second data row is missing trailing columns
	csv := `Student ID,First name,Comment ID,In response to comment ID,Comment text
s1,Alice,c1,,Complete row
s2,Bob
`
	svc := NewDatasetService(zap.NewNop(), nil)

	// Act
	data, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))

	// Assert: the short row degrades to an authored comment with no text or
	// reply link; it does not fail the dataset
	require.NoError(t, err)
	require.Len(t, data.Network.Nodes, 2)
	assert.Equal(t, "Bob", data.Network.Nodes[1].Name)
	assert.Empty(t, data.Network.Links)
	assert.Equal(t, "Complete row", data.WordCloudText)
}

func TestDatasetService_IngestFile_Missing(t *testing.T) {
	svc := NewDatasetService(zap.NewNop(), nil)

	_, err := svc.IngestFile(context.Background(), "does/not/exist.csv")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
