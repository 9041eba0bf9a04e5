package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/diwise/eventity/pkg/eventity/client"
	eventityerrors "github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/diwise/eventity/pkg/test"
	"github.com/matryer/is"
)

func TestPatchCommand(t *testing.T) {
	is, c, out := setupTest(t)

	err := execute(c, out, "patch", "car", "speed=42", "name=volvo", `tags=["a","b"]`, "open=true")
	is.NoErr(err)

	is.Equal(len(c.PatchCalls()), 1)
	call := c.PatchCalls()[0]
	is.Equal(call.EntityID, "car")
	is.Equal(len(call.Patches), 4)
	is.True(call.Patches[0].Value.Equal(types.Number(42)))
	is.True(call.Patches[1].Value.Equal(types.String("volvo"))) // not json, sent as a string
	is.True(call.Patches[2].Value.Equal(types.Array(types.String("a"), types.String("b"))))
	is.True(call.Patches[3].Value.Equal(types.Boolean(true)))

	is.Equal(out.String(), "appended 4 patch(es) to car\n")
}

func TestPatchCommandRejectsMalformedPatches(t *testing.T) {
	is, c, out := setupTest(t)

	err := execute(c, out, "patch", "car", "speed")
	is.True(err != nil)
	is.Equal(len(c.PatchCalls()), 0)
}

func TestDeleteCommand(t *testing.T) {
	is, c, out := setupTest(t)

	is.NoErr(execute(c, out, "delete", "car"))
	is.Equal(c.DeleteCalls()[0].EntityID, "car")
}

func TestDeleteCommandReportsServiceErrors(t *testing.T) {
	is, c, out := setupTest(t)

	c.DeleteFunc = func(ctx context.Context, entityID string) error {
		return eventityerrors.NewInvalidEntityIDError(entityID)
	}

	err := execute(c, out, "delete", "_car")
	is.True(errors.Is(err, eventityerrors.ErrInvalidEntityID))
}

func TestViewCommand(t *testing.T) {
	is, c, out := setupTest(t)

	c.QueryFunc = func(ctx context.Context, entityID string, views []types.View) (map[string]types.Value, error) {
		return map[string]types.Value{"speed": types.Number(21.5), "name": types.String("a,b")}, nil
	}

	err := execute(c, out, "view", "car", "speed:avg", "name:Concat:,", "--from", "10", "--to", "20")
	is.NoErr(err)

	views := c.QueryCalls()[0].Views
	is.Equal(len(views), 2)
	is.Equal(views[0].Projection, types.NewProjection(types.Avg))
	is.Equal(views[1].Projection, types.NewConcat(","))
	is.Equal(*views[0].Range, types.Range{From: 10, To: 20})

	is.Equal(out.String(), "{\n  \"name\": \"a,b\",\n  \"speed\": 21.5\n}\n")
}

func TestViewCommandWithoutRangeSendsNone(t *testing.T) {
	is, c, out := setupTest(t)

	is.NoErr(execute(c, out, "view", "car", "speed:Latest", "--alias", "now"))

	v := c.QueryCalls()[0].Views[0]
	is.True(v.Range == nil)
	is.Equal(v.Label(), "now")
}

func TestViewCommandOpenEndedRange(t *testing.T) {
	is, c, out := setupTest(t)

	is.NoErr(execute(c, out, "view", "car", "speed:Collect", "--from", "100"))

	v := c.QueryCalls()[0].Views[0]
	is.Equal(*v.Range, types.Range{From: 100, To: maxTimestamp})
}

func TestViewCommandRejectsBadViews(t *testing.T) {
	is, c, out := setupTest(t)

	for _, args := range [][]string{
		{"view", "car", "speed"},
		{"view", "car", "speed:Median"},
		{"view", "car", "name:Concat"},
		{"view", "car", "speed:Sum:,"},
		{"view", "car", "a:Sum", "b:Sum", "--alias", "x"},
	} {
		is.True(execute(c, out, args...) != nil)
	}

	is.Equal(len(c.QueryCalls()), 0)
}

func TestURLFlagIsPassedToTheClient(t *testing.T) {
	is := is.New(t)

	var url string
	c := newClientMock()

	cmd := NewRootCommand(DefaultServiceURL, func(u string, debug bool) client.EventityClient {
		url = u
		return c
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"delete", "car", "--url", "http://eventity:8080"})

	is.NoErr(cmd.Execute())
	is.Equal(url, "http://eventity:8080")
}

func execute(c *test.EventityClientMock, out *bytes.Buffer, args ...string) error {
	cmd := NewRootCommand(DefaultServiceURL, func(string, bool) client.EventityClient { return c })
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func setupTest(t *testing.T) (*is.I, *test.EventityClientMock, *bytes.Buffer) {
	return is.New(t), newClientMock(), &bytes.Buffer{}
}

func newClientMock() *test.EventityClientMock {
	return &test.EventityClientMock{
		PatchFunc: func(ctx context.Context, entityID string, patches []types.Patch) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, entityID string) error {
			return nil
		},
		QueryFunc: func(ctx context.Context, entityID string, views []types.View) (map[string]types.Value, error) {
			return map[string]types.Value{}, nil
		},
	}
}

func TestParsePatchesKeepsEqualsSignsInValues(t *testing.T) {
	is := is.New(t)

	patches, err := parsePatches([]string{"expr=a=b"})
	is.NoErr(err)
	is.Equal(patches[0].Field, "expr")
	is.True(patches[0].Value.Equal(types.String("a=b")))
}
