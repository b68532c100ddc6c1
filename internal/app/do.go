package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/platform"
)

// DoOptions are the arguments of a one-shot action.
type DoOptions struct {
	Action    string
	Deck      string
	Front     string
	Back      string
	Tags      string
	ImagePath string
}

// printHost writes the emitted value to out as one JSON line.
type printHost struct {
	out     io.Writer
	emitted bool
}

func (h *printHost) SetComponentReady() error { return nil }

func (h *printHost) SetComponentValue(value any) error {
	h.emitted = true
	if value == nil {
		_, err := fmt.Fprintln(h.out, "undefined")
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	_, err = fmt.Fprintln(h.out, string(data))
	return err
}

func (h *printHost) SetFrameHeight() error { return nil }

// RunDo performs a single action and prints the value a host would receive.
// The command fails when the action failed, after printing the sentinel.
func RunDo(ctx context.Context, opts Options, do DoOptions, out io.Writer) error {
	req, err := buildRequest(do)
	if err != nil {
		return err
	}

	rt, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	host := &printHost{out: out}
	result, err := rt.dispatcher.Handle(ctx, host, req)
	if err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("%s: %w", req.Action, result.Err)
	}
	return nil
}

func buildRequest(do DoOptions) (bridge.ActionRequest, error) {
	action := bridge.Action(strings.TrimSpace(do.Action))
	if !action.Known() {
		names := make([]string, 0, len(bridge.Actions()))
		for _, a := range bridge.Actions() {
			names = append(names, string(a))
		}
		return bridge.ActionRequest{}, fmt.Errorf("unknown action %q (want one of %s)", do.Action, strings.Join(names, ", "))
	}

	req := bridge.ActionRequest{
		Action: action,
		Deck:   strings.TrimSpace(do.Deck),
		Front:  do.Front,
		Back:   do.Back,
		Tags:   strings.TrimSpace(do.Tags),
	}
	if path := strings.TrimSpace(do.ImagePath); path != "" {
		data, _, err := platform.ReadImage(path)
		if err != nil {
			return bridge.ActionRequest{}, err
		}
		req.Image = data
	} else if action == bridge.ActionAddCardWithImage {
		return bridge.ActionRequest{}, fmt.Errorf("%s needs --image", action)
	}
	return req, nil
}
