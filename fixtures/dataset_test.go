package fixtures

import (
	"testing"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{Employees, Users, UsersColumnar}, Names())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, FixturesUnknownDataset))
}

func TestUsersRecords(t *testing.T) {
	d, err := Lookup(Users)
	require.NoError(t, err)

	assert.Equal(t, "User", d.RecordName)
	assert.Equal(t, []string{"name", "age", "email"}, d.ColumnNames())

	records := d.Records()
	require.Len(t, records, 2)
	assert.Equal(t, Record{"name": "John Doe", "age": 25, "email": "john@example.com"}, records[0])
	assert.Equal(t, Record{"name": "Jane Smith", "age": 30, "email": "jane@example.com"}, records[1])
}

func TestEmployeesSheet(t *testing.T) {
	d, err := Lookup(Employees)
	require.NoError(t, err)

	assert.Equal(t, "TestData", d.Sheet)
	assert.Equal(t, []string{"name", "age", "department", "salary"}, d.ColumnNames())

	names, err := d.ColumnValues("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice", "Charlie", "Diana", "Bob"}, names)
}

func TestUsersColumnarColumns(t *testing.T) {
	d, err := Lookup(UsersColumnar)
	require.NoError(t, err)

	ages, err := d.ColumnValues("age")
	require.NoError(t, err)
	assert.Equal(t, []any{25, 30, 35}, ages)

	_, err = d.ColumnValues("salary")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, FixturesUnknownColumn))
}

func TestRecordsAreCopies(t *testing.T) {
	d, err := Lookup(Users)
	require.NoError(t, err)

	records := d.Records()
	records[0]["name"] = "changed"

	assert.Equal(t, "John Doe", d.Records()[0]["name"])
}

func TestLookupReturnsCopy(t *testing.T) {
	d, err := Lookup(Users)
	require.NoError(t, err)

	d.Rows[0][0] = "Mallory"
	d.Rows = d.Rows[:1]
	d.Columns[0].Name = "renamed"

	again, err := Lookup(Users)
	require.NoError(t, err)
	require.Len(t, again.Rows, 2)
	assert.Equal(t, "John Doe", again.Rows[0][0])
	assert.Equal(t, "name", again.Columns[0].Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		ds   *Dataset
		code errors.Code
	}{
		{
			name: "short row",
			ds: &Dataset{
				Name:    "short",
				Columns: []Column{{Name: "a", Type: String}, {Name: "b", Type: Int32}},
				Rows:    [][]any{{"x"}},
			},
			code: FixturesRowWidth,
		},
		{
			name: "string in int column",
			ds: &Dataset{
				Name:    "types",
				Columns: []Column{{Name: "a", Type: Int64}},
				Rows:    [][]any{{"x"}},
			},
			code: FixturesValueType,
		},
		{
			name: "int32 overflow",
			ds: &Dataset{
				Name:    "overflow",
				Columns: []Column{{Name: "a", Type: Int32}},
				Rows:    [][]any{{int64(1) << 40}},
			},
			code: FixturesValueType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestAsInt64(t *testing.T) {
	for _, v := range []any{int(7), int8(7), int16(7), int32(7), int64(7), uint8(7), uint16(7), uint32(7)} {
		n, err := AsInt64(v)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	}

	_, err := AsInt64(7.5)
	assert.Error(t, err)
}
