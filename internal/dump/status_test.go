package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStatuses_WorkedExample(t *testing.T) {
	main := mustParse(t, `{"Foo": {"1": {"size": 100}, "2": {"size": 200}}}`)
	other := mustParse(t, `{"Foo": {"1": {"size": 150}, "3": {"size": 50}}}`)

	statuses := main.ObjectStatuses("Foo", other)

	require.Len(t, statuses, 3)
	assert.Equal(t, StatusModified, statuses["1"])
	assert.Equal(t, StatusDeleted, statuses["2"])
	assert.Equal(t, StatusNew, statuses["3"])
}

func TestObjectStatuses_OldRequiresDeepEquality(t *testing.T) {
	main := mustParse(t, `{"Foo": {
		"same": {"size": 100, "attr": {"k": "v"}},
		"attrChanged": {"size": 100, "attr": {"k": "v"}},
		"refChanged": {"size": 100, "ref": [["A", "1"]]}
	}}`)
	other := mustParse(t, `{"Foo": {
		"same": {"size": 100, "attr": {"k": "v"}},
		"attrChanged": {"size": 100, "attr": {"k": "other"}},
		"refChanged": {"size": 100, "ref": [["A", "2"]]}
	}}`)

	statuses := main.ObjectStatuses("Foo", other)

	assert.Equal(t, StatusOld, statuses["same"])
	// Size is unchanged in both: Modified must trigger on any field.
	assert.Equal(t, StatusModified, statuses["attrChanged"])
	assert.Equal(t, StatusModified, statuses["refChanged"])
}

// Every id in the union gets exactly one status: the four sets partition
// the union with no overlap.
func TestObjectStatuses_Partition(t *testing.T) {
	main := mustParse(t, `{"Foo": {
		"a": {"size": 1}, "b": {"size": 2}, "c": {"size": 3}, "d": {"size": 4}
	}}`)
	other := mustParse(t, `{"Foo": {
		"b": {"size": 2}, "c": {"size": 30}, "d": {"size": 4}, "e": {"size": 5}
	}}`)

	statuses := main.ObjectStatuses("Foo", other)

	union := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true}
	require.Len(t, statuses, len(union))
	for id := range union {
		assert.Contains(t, statuses, id)
	}

	counts := make(map[ObjectStatus]int)
	for _, status := range statuses {
		counts[status]++
	}
	assert.Equal(t, 1, counts[StatusDeleted])  // a
	assert.Equal(t, 2, counts[StatusOld])      // b, d
	assert.Equal(t, 1, counts[StatusModified]) // c
	assert.Equal(t, 1, counts[StatusNew])      // e
}

func TestObjectStatuses_TypeMissingOnOneSide(t *testing.T) {
	main := mustParse(t, `{"Foo": {"1": {"size": 1}}}`)
	other := mustParse(t, `{"Bar": {"x": {"size": 1}}}`)

	assert.Equal(t,
		map[string]ObjectStatus{"1": StatusDeleted},
		main.ObjectStatuses("Foo", other))
	assert.Equal(t,
		map[string]ObjectStatus{"x": StatusNew},
		main.ObjectStatuses("Bar", other))
	assert.Empty(t, main.ObjectStatuses("Missing", other))
}

func TestParseObjectStatus(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  ObjectStatus
	}{
		{"old", StatusOld},
		{"Modified", StatusModified},
		{"DELETED", StatusDeleted},
		{" new ", StatusNew},
	} {
		got, err := ParseObjectStatus(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseObjectStatus("fresh")
	assert.Error(t, err)
}

func TestObjectStatus_String(t *testing.T) {
	assert.Equal(t, "Old", StatusOld.String())
	assert.Equal(t, "Modified", StatusModified.String())
	assert.Equal(t, "Deleted", StatusDeleted.String())
	assert.Equal(t, "New", StatusNew.String())
}
