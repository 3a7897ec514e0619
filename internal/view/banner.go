package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// FlashBanner renders queued flash messages as dismissible alerts.
func FlashBanner(f FlashData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if f.Empty() {
			return nil
		}
		if _, err := io.WriteString(w, `<div id="flash" class="mx-auto max-w-md space-y-2 px-4 pt-4">`); err != nil {
			return err
		}
		for _, msg := range f.Error {
			if err := writeAlert(w, "border-rose-200 bg-rose-50 text-rose-700", msg); err != nil {
				return err
			}
		}
		for _, msg := range f.Success {
			if err := writeAlert(w, "border-emerald-200 bg-emerald-50 text-emerald-700", msg); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeAlert(w io.Writer, classes, msg string) error {
	_, err := io.WriteString(w, `<p role="alert" class="rounded-lg border px-3 py-2 text-xs `+classes+`">`+
		templ.EscapeString(msg)+`</p>`)
	return err
}

// Embed places a templ component inside a gomponents tree. gomponents renders
// without a context, so the component sees context.Background.
func Embed(component templ.Component) gomponents.Node {
	return gomponents.NodeFunc(func(w io.Writer) error {
		return component.Render(context.Background(), w)
	})
}
