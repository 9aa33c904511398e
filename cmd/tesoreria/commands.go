package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/LucasCaro97/aserradero-tesoreria/constants"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/common"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/reconcile"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/registration"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/tableview"
)

var stdout io.Writer = os.Stdout

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() > 0 {
		return usageError{fmt.Sprintf("%s: unexpected arguments %v", fs.Name(), fs.Args())}
	}
	return nil
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

func (a *app) records(ctx context.Context, args []string) error {
	fs := newFlagSet("records")
	n := fs.Int("n", a.cfg.Ledger.RecentRecords, "how many records to show (0 = all returned)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	recs, err := a.ledger.ListRecentRecords(ctx, *n)
	if err != nil {
		return err
	}
	w := table()
	fmt.Fprintln(w, "ID\tFECHA")
	for _, r := range recs {
		fmt.Fprintf(w, "%d\t%s\n", r.ID, r.Date)
	}
	return w.Flush()
}

func (a *app) recordCreate(ctx context.Context, args []string) error {
	fs := newFlagSet("record-create")
	dateStr := fs.String("date", "", "record date YYYY-MM-DD (default today)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	date, err := dateOrToday(*dateStr)
	if err != nil {
		return err
	}
	rec, err := a.register.EnsureDailyRecord(ctx, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "registro %d (%s)\n", rec.ID, rec.Date)
	return nil
}

func (a *app) methods(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("methods"), args); err != nil {
		return err
	}
	methods, err := a.ledger.ListPaymentMethods(ctx)
	if err != nil {
		return err
	}
	w := table()
	fmt.Fprintln(w, "ID\tNOMBRE\tACTIVO\tCHEQUES")
	for i := range methods {
		m := &methods[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.Name, yesNo(m.Active), yesNo(reconcile.IsCheckBased(m)))
	}
	return w.Flush()
}

func (a *app) banks(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("banks"), args); err != nil {
		return err
	}
	banks, err := a.ledger.ListBanks(ctx)
	if err != nil {
		return err
	}
	w := table()
	fmt.Fprintln(w, "ID\tNOMBRE\tACTIVO")
	for _, b := range banks {
		fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Name, yesNo(b.Active))
	}
	return w.Flush()
}

type checkFilters struct {
	direction string
	status    string
	from      string
	to        string
}

func (f *checkFilters) register(fs *flag.FlagSet) {
	fs.StringVar(&f.direction, "direction", "", "EMITIDO or RECIBIDO")
	fs.StringVar(&f.status, "status", "", "check status ("+strings.Join(constants.CheckStatuses(), ", ")+")")
	fs.StringVar(&f.from, "from", "", "due from YYYY-MM-DD")
	fs.StringVar(&f.to, "to", "", "due until YYYY-MM-DD")
}

func (f *checkFilters) build() (func(entity.Check) bool, error) {
	v := common.NewValidator().
		Field("from", f.from, common.ISODate).
		Field("to", f.to, common.ISODate)
	if f.direction != "" {
		v.Field("direction", f.direction, common.OneOf(constants.CheckDirections...))
	}
	status := constants.CheckStatus(strings.ToUpper(strings.TrimSpace(f.status)))
	if status != "" {
		v.Field("status", status, knownStatus)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var from, to entity.Date
	if f.from != "" {
		from, _ = entity.ParseDate(f.from)
	}
	if f.to != "" {
		to, _ = entity.ParseDate(f.to)
	}
	due, err := tableview.DueBetween(from, to)
	if err != nil {
		return nil, common.NewAppError("VALIDATION_ERROR", err.Error(), common.ErrValidation)
	}

	filters := []func(entity.Check) bool{due}
	if d, ok := constants.ParseCheckDirection(f.direction); ok {
		filters = append(filters, tableview.WithDirection(d))
	}
	if status != "" {
		filters = append(filters, tableview.WithStatus(status))
	}
	return tableview.All(filters...), nil
}

func knownStatus(fieldName string, value interface{}) *common.ValidationError {
	if s, ok := value.(constants.CheckStatus); ok && s.Valid() {
		return nil
	}
	return &common.ValidationError{
		Field:   fieldName,
		Value:   value,
		Message: "must be one of " + strings.Join(constants.CheckStatuses(), ", "),
	}
}

func (a *app) checks(ctx context.Context, args []string) error {
	fs := newFlagSet("checks")
	var filters checkFilters
	filters.register(fs)
	sortKey := fs.String("sort", tableview.SortByDueDate, "sort by vencimiento, monto or numero")
	desc := fs.Bool("desc", false, "descending order")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", tableview.DefaultPageSize, "page size")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	filter, err := filters.build()
	if err != nil {
		return err
	}
	order, err := tableview.CheckOrder(*sortKey)
	if err != nil {
		return usageError{err.Error()}
	}

	all, err := a.ledger.ListChecks(ctx)
	if err != nil {
		return err
	}
	p := tableview.Apply(all, tableview.Query[entity.Check]{
		Filter:   filter,
		Compare:  order,
		Desc:     *desc,
		Page:     *page,
		PageSize: *size,
	})

	w := table()
	fmt.Fprintln(w, "ID\tNUMERO\tTIPO\tESTADO\tVENCIMIENTO\tMONTO\tBANCO")
	for _, c := range p.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Number, c.Direction, c.Status, c.DueDate, c.Amount.Format(), c.Bank)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "página %d de %d (%d cheques)\n", p.CurrentPage, p.TotalPages, p.TotalRows)
	return nil
}

func (a *app) transaction(ctx context.Context, kind constants.TransactionKind, args []string) error {
	fs := newFlagSet(strings.ToLower(string(kind)))
	amountStr := fs.String("amount", "", "amount, e.g. 15000.50 (required)")
	methodID := fs.Int64("method", 0, "payment method id (required)")
	dateStr := fs.String("date", "", "date YYYY-MM-DD (default today)")
	checksStr := fs.String("checks", "", "comma separated check ids to link")
	obs := fs.String("obs", "", "observation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	v := common.NewValidator().
		Field("amount", *amountStr, common.Required).
		Field("method", *methodID, common.Required).
		Field("date", *dateStr, common.ISODate)
	if err := v.Err(); err != nil {
		return err
	}
	amount, err := money.Parse(*amountStr)
	if err != nil {
		return common.NewAppError("VALIDATION_ERROR", err.Error(), common.ErrValidation)
	}
	date, err := dateOrToday(*dateStr)
	if err != nil {
		return err
	}
	ids, err := parseIDs(*checksStr)
	if err != nil {
		return err
	}

	res, err := a.register.Register(ctx, registration.Request{
		Kind:            kind,
		Amount:          amount,
		PaymentMethodID: *methodID,
		Date:            date,
		Observation:     *obs,
		CheckIDs:        ids,
	})
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(stdout, "%s %d registrado en el registro %d (%s): %s\n",
		strings.ToLower(string(kind)), res.Transaction.ID, res.Record.ID, res.Record.Date, amount.Format())
	return nil
}

func (a *app) exportChecks(ctx context.Context, args []string) error {
	fs := newFlagSet("export-checks")
	var filters checkFilters
	filters.register(fs)
	out := fs.String("out", "cheques.xlsx", "output XLSX file path")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	filter, err := filters.build()
	if err != nil {
		return err
	}
	order, _ := tableview.CheckOrder(tableview.SortByDueDate)

	all, err := a.ledger.ListChecks(ctx)
	if err != nil {
		return err
	}
	var rows []entity.Check
	for page := 1; ; page++ {
		p := tableview.Apply(all, tableview.Query[entity.Check]{
			Filter:   filter,
			Compare:  order,
			Page:     page,
			PageSize: tableview.MaxPageSize,
		})
		rows = append(rows, p.Items...)
		if page >= p.TotalPages {
			break
		}
	}

	data, err := a.exporter.ChecksXLSX(rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(stdout, "%d cheques exportados a %s\n", len(rows), *out)
	return nil
}

// describe turns reconciliation errors into a message the operator can act on.
func describe(err error) error {
	var rerr *reconcile.Error
	if !errors.As(err, &rerr) {
		return err
	}
	var hint string
	switch rerr.Kind {
	case reconcile.KindInvalidAmount:
		hint = "ingrese un monto mayor a cero"
	case reconcile.KindNoChecksSelected:
		hint = "el medio de pago es cheque: indique los cheques con -checks"
	case reconcile.KindStaleSelection:
		hint = "algunos cheques ya no están disponibles: liste los pendientes y vuelva a elegir"
	case reconcile.KindAmountMismatch:
		hint = "la suma de los cheques debe coincidir con el monto"
	case reconcile.KindUnexpectedChecks:
		hint = "el medio de pago no admite cheques vinculados"
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w (%s)", err, hint)
}

func dateOrToday(s string) (entity.Date, error) {
	if strings.TrimSpace(s) == "" {
		return entity.Today(), nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return entity.Date{}, common.NewAppError("VALIDATION_ERROR", err.Error(), common.ErrValidation)
	}
	return d, nil
}

func parseIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, common.NewAppError("VALIDATION_ERROR", fmt.Sprintf("invalid check id %q", p), common.ErrInvalidInput)
		}
		out = append(out, id)
	}
	return out, nil
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
