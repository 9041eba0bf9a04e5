package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	eventityerrors "github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var body = expects.RequestBody

func TestPatch(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPatch),
			path("/car"),
			body(`[{"field":"speed","value":42},{"field":"name","value":"volvo"}]`),
		),
		Returns(
			response.Code(http.StatusNoContent),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	err := c.Patch(context.Background(), "car", []types.Patch{
		{Field: "speed", Value: types.Number(42)},
		{Field: "name", Value: types.String("volvo")},
	})

	is.NoErr(err)
	is.Equal(s.RequestCount(), 1)
}

func TestPatchHandlesInvalidEntityID(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusBadRequest),
			response.Body([]byte(`{"error":"entity id \"_car\" must not begin with the reserved prefix"}`)),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	err := c.Patch(context.Background(), "_car", nil)

	is.True(err != nil)
	is.True(errors.Is(err, eventityerrors.ErrBadRequest)) // no type header, so only the status code is known
	is.Equal(err.Error(), `entity id "_car" must not begin with the reserved prefix`)
}

func TestDelete(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodDelete),
			path("/car"),
		),
		Returns(
			response.Code(http.StatusNoContent),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	is.NoErr(c.Delete(context.Background(), "car"))
}

func TestDeleteThrowsErrorOnUnexpectedSuccess(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	err := c.Delete(context.Background(), "car")

	is.True(err != nil)
	is.Equal(err.Error(), "unexpected response code 200 (internal error)")
}

func TestQuery(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/car"),
			body(`[{"field":"speed","alias":"total","projection":{"t":"Sum"}},{"field":"name","range":{"from":1,"to":2},"projection":{"t":"Concat","c":", "}}]`),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"total":6,"name":"a, b"}`)),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	total := "total"
	result, err := c.Query(context.Background(), "car", []types.View{
		{Field: "speed", Alias: &total, Projection: types.NewProjection(types.Sum)},
		{Field: "name", Range: &types.Range{From: 1, To: 2}, Projection: types.NewConcat(", ")},
	})

	is.NoErr(err)
	is.Equal(len(result), 2)
	is.True(result["total"].Equal(types.Number(6)))
	is.True(result["name"].Equal(types.String("a, b")))
}

func TestQueryHandlesTypeMismatch(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusBadRequest),
			response.Body([]byte(`{"error":"cannot average an empty stream"}`)),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	_, err := c.Query(context.Background(), "car", []types.View{{Field: "speed", Projection: types.NewProjection(types.Avg)}})

	is.True(err != nil)
	is.Equal(err.Error(), "cannot average an empty stream")
}

func TestQueryHandlesServerError(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusInternalServerError),
			response.Body([]byte(`{"error":"read: connection refused"}`)),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL(), Debug("true"))

	_, err := c.Query(context.Background(), "car", nil)

	is.True(errors.Is(err, eventityerrors.ErrInternal))
}

func TestQueryHandlesBadResponseBody(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`not json`)),
		),
	)
	defer s.Close()

	c := NewEventityClient(s.URL())

	_, err := c.Query(context.Background(), "car", nil)

	is.True(errors.Is(err, eventityerrors.ErrBadResponse))
}

func TestEntityIDsAreEscaped(t *testing.T) {
	is := is.New(t)

	c := NewEventityClient("http://localhost:8080/").(*client)
	is.Equal(c.entityURL("urn:car/1"), "http://localhost:8080/urn:car%2F1")
}
