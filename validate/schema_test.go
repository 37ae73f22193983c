package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, body string) *Object {
	t.Helper()
	obj, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return obj
}

func existing(ids ...int64) ExistsFunc {
	return func(_ context.Context, id int64) (bool, error) {
		for _, known := range ids {
			if id == known {
				return true, nil
			}
		}
		return false, nil
	}
}

var reviewSchema = Schema{Fields: []Field{
	{Name: "content", Type: String, Required: true, Message: "Content must be a string"},
	{Name: "rating", Type: Number, Required: true, Message: "Rating must be a number"},
	{Name: "bookId", Type: Integer, Required: true, Message: "Book ID must be a number", Exists: existing(1), ExistsMessage: "Book ID does not exist"},
}}

func TestCheckMissingFields(t *testing.T) {
	res, err := reviewSchema.Check(context.Background(), mustDecode(t, `{"content": "", "rating": 0}`))
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, []string{"content", "rating", "bookId"}, res.MissingFields)
	assert.Empty(t, res.Errors)
}

func TestCheckTypeErrorsInFieldOrder(t *testing.T) {
	res, err := reviewSchema.Check(context.Background(), mustDecode(t, `{"bookId": "1", "rating": "5", "content": 3}`))
	require.NoError(t, err)

	assert.Empty(t, res.MissingFields)
	assert.Equal(t, []string{"Content must be a string", "Rating must be a number", "Book ID must be a number"}, res.Errors)
}

func TestCheckExistence(t *testing.T) {
	res, err := reviewSchema.Check(context.Background(), mustDecode(t, `{"content": "ok", "rating": 4.5, "bookId": 9}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Book ID does not exist"}, res.Errors)

	res, err = reviewSchema.Check(context.Background(), mustDecode(t, `{"content": "ok", "rating": 4.5, "bookId": 1}`))
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestCheckExistenceLookupError(t *testing.T) {
	boom := errors.New("db down")
	schema := Schema{Fields: []Field{{Name: "bookId", Type: Integer, Required: true, Exists: func(context.Context, int64) (bool, error) {
		return false, boom
	}}}}

	_, err := schema.Check(context.Background(), mustDecode(t, `{"bookId": 1}`))
	assert.ErrorIs(t, err, boom)
}

func TestCheckIntegerList(t *testing.T) {
	schema := Schema{Fields: []Field{{
		Name: "authorIds", Type: IntegerList, Message: "Author IDs must be an array of numbers",
		Exists: existing(1, 2), ExistsMessage: "Author ID %d does not exist",
	}}}

	tests := []struct {
		body string
		want []string
	}{
		{`{"authorIds": [1, 2]}`, []string{}},
		{`{"authorIds": []}`, []string{}},
		{`{"authorIds": [1, 3]}`, []string{"Author ID 3 does not exist"}},
		{`{"authorIds": [1, "2"]}`, []string{"Author IDs must be an array of numbers"}},
		{`{"authorIds": 1}`, []string{"Author IDs must be an array of numbers"}},
		{`{}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			res, err := schema.Check(context.Background(), mustDecode(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Errors)
		})
	}
}

func TestCheckOneOfAndDates(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "status", Type: String, OneOf: []string{"AVAILABLE", "BORROWED"}, Message: "bad status"},
		{Name: "publicationDate", Type: Date, Message: "bad date"},
		{Name: "borrowDate", Type: Day, Message: "bad day"},
	}}

	res, err := schema.Check(context.Background(), mustDecode(t, `{"status": "LOST", "publicationDate": "soon", "borrowDate": "2024-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"bad status", "bad date", "bad day"}, res.Errors)

	res, err = schema.Check(context.Background(), mustDecode(t, `{"status": "BORROWED", "publicationDate": "2020-05-01T00:00:00Z", "borrowDate": "2024-01-01"}`))
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestCheckStrictAndRequiredMessage(t *testing.T) {
	schema := Schema{Strict: true, Fields: []Field{
		{Name: "name", Type: String, Required: true, Message: "Name is required and must be a string", RequiredMessage: "Name is required and must be a string"},
		{Name: "address", Type: String, Required: true, Message: "Address is required and must be a string", RequiredMessage: "Address is required and must be a string"},
	}}

	res, err := schema.Check(context.Background(), mustDecode(t, `{"extra": 1, "name": 5, "other": true}`))
	require.NoError(t, err)

	assert.Empty(t, res.MissingFields)
	assert.Equal(t, []string{
		"Name is required and must be a string",
		"Address is required and must be a string",
		"Unexpected fields provided: extra, other",
	}, res.Errors)
}

func TestPartial(t *testing.T) {
	partial := reviewSchema.Partial()

	res, err := partial.Check(context.Background(), mustDecode(t, `{"rating": 3}`))
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = partial.Check(context.Background(), mustDecode(t, `{"content": null}`))
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = partial.Check(context.Background(), mustDecode(t, `{"content": ""}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"content"}, res.MissingFields)

	res, err = partial.Check(context.Background(), mustDecode(t, `{"rating": "high"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rating must be a number"}, res.Errors)
}

func TestCheckFalsyValuesOnOptionalFields(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "branchId", Type: Integer, Message: "Branch ID must be a number", Exists: existing(1), ExistsMessage: "Branch ID does not exist"},
		{Name: "biography", Type: String, Message: "Biography must be a string"},
		{Name: "returnDate", Type: Day, Message: "bad day"},
	}}

	tests := []struct {
		body string
		want []string
	}{
		{`{"branchId": 0}`, []string{"Branch ID does not exist"}},
		{`{"branchId": false}`, []string{"Branch ID must be a number"}},
		{`{"branchId": ""}`, []string{"Branch ID must be a number"}},
		{`{"biography": 0}`, []string{"Biography must be a string"}},
		{`{"biography": false}`, []string{"Biography must be a string"}},
		{`{"biography": ""}`, []string{}},
		{`{"returnDate": ""}`, []string{"bad day"}},
		{`{"returnDate": false}`, []string{"bad day"}},
		{`{"branchId": null, "biography": null, "returnDate": null}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			res, err := schema.Check(context.Background(), mustDecode(t, tt.body))
			require.NoError(t, err)
			assert.Empty(t, res.MissingFields)
			assert.Equal(t, tt.want, res.Errors)

			res, err = schema.Partial().Check(context.Background(), mustDecode(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Errors)
		})
	}
}

func TestPartialRequiredFieldSentFalsy(t *testing.T) {
	partial := reviewSchema.Partial()

	res, err := partial.Check(context.Background(), mustDecode(t, `{"content": false, "bookId": 0}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"content", "bookId"}, res.MissingFields)
}
