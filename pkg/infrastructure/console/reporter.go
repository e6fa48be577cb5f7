package console

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"sales/pkg/common/domain"
	"sales/pkg/domain/model"
)

var _ domain.EventDispatcher = &Reporter{}

// Reporter prints the outcome of recorded sales as status lines. Events it
// has no line for are ignored.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) Dispatch(event domain.Event) error {
	var line string
	switch e := event.(type) {
	case model.CustomerNotFound:
		line = "Customer not found."
	case model.ProductNotFound:
		line = fmt.Sprintf("Product with id %d not found.", e.ProductID)
	case model.SaleCompleted:
		line = fmt.Sprintf("Sale completed successfully. Total: $%s", e.Total.StringFixed(2))
	default:
		return nil
	}

	_, err := fmt.Fprintln(r.out, line)
	return errors.Wrapf(err, "report %s", event.Type())
}
