package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/common/expfmt"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gobank/internal/app"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/usecase"
)

var heading = color.New(color.FgCyan, color.Bold)

func demoCmd() *cobra.Command {
	var (
		showMetrics bool
		noColor     bool
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a walkthrough against an in-process bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.New(logger.Config{Level: logLevel, Format: "console", Output: cmd.ErrOrStderr()})

			bank, err := app.New(cfg, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := runDemo(cmd.Context(), out, bank); err != nil {
				return err
			}
			if showMetrics {
				return printMetrics(out, bank)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print the bank metrics after the walkthrough")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	return cmd
}

type demoCard struct {
	card *domain.Card
	pin  string
}

// demo carries the state of one walkthrough.
type demo struct {
	ctx  context.Context
	w    io.Writer
	bank *app.Bank

	branches []*domain.Branch
	atms     []*domain.ATM
}

func runDemo(ctx context.Context, w io.Writer, bank *app.Bank) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d := &demo{ctx: ctx, w: w, bank: bank}

	heading.Fprintf(w, "%s: capital %s EUR\n", bank.Name, bank.Devices.Capital().StringFixed(2))

	for _, location := range []string{"Hameenkatu 22", "Kauppakatu 10"} {
		branch, err := bank.Devices.AddBranch(ctx, usecase.AddDeviceInput{Location: location, Balance: decimal.NewFromInt(10000)})
		if err != nil {
			return fmt.Errorf("add branch: %w", err)
		}
		d.branches = append(d.branches, branch)

		atm, err := bank.Devices.AddATM(ctx, usecase.AddDeviceInput{Location: location, Balance: decimal.NewFromInt(1000)})
		if err != nil {
			return fmt.Errorf("add ATM: %w", err)
		}
		d.atms = append(d.atms, atm)
	}
	fmt.Fprintf(w, "2 branches and 2 ATMs installed, capital left %s EUR\n", bank.Devices.Capital().StringFixed(2))

	people := []usecase.AddCustomerInput{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@gmail.com", Phone: "+1234567890"},
		{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@gmail.com", Phone: "+0987654321"},
		{FirstName: "John", LastName: "Smith", Email: "john.smith@gmail.com", Phone: "+6789054321"},
	}
	cardPlans := []struct {
		account int
		typ     string
		pin     string
	}{
		{account: 0, typ: "CREDIT", pin: "1234"},
		{account: 1, typ: "DEBIT", pin: "1111"},
		{account: 2, typ: "CREDIT", pin: "2222"},
	}

	customers := make([]*domain.Customer, 0, len(people))
	cards := make([]demoCard, 0, len(people))
	for i, input := range people {
		customer, accounts, err := d.customerWithAccounts(input, "EUR", "USD", "GBP")
		if err != nil {
			return err
		}
		customers = append(customers, customer)

		plan := cardPlans[i]
		card, err := bank.Cards.IssueCard(ctx, usecase.IssueCardInput{
			AccountID: accounts[plan.account].ID(),
			Type:      plan.typ,
			PIN:       plan.pin,
		})
		if err != nil {
			return fmt.Errorf("issue card: %w", err)
		}
		cards = append(cards, demoCard{card: card, pin: plan.pin})
	}

	if err := d.balances("Before depositing money", cards); err != nil {
		return err
	}

	deposits := []struct {
		atm      int
		amount   int64
		currency string
	}{
		{atm: 0, amount: 100, currency: "EUR"},
		{atm: 1, amount: 200, currency: "EUR"},
		{atm: 1, amount: 300, currency: "GBP"},
	}
	for i, dep := range deposits {
		if _, err := d.cash(bank.Devices.DepositCash, d.atms[dep.atm], cards[i], dep.amount, dep.currency); err != nil {
			return fmt.Errorf("deposit cash: %w", err)
		}
	}

	if err := d.balances("After depositing money", cards); err != nil {
		return err
	}

	shop, shopAccounts, err := d.customerWithAccounts(
		usecase.AddCustomerInput{FirstName: "Grocery Shop", LastName: "H-Market", Email: "info@h-market.fi", Phone: "+358 123 456 789"},
		"EUR",
	)
	if err != nil {
		return err
	}

	var descriptions []string
	purchase, err := bank.Cards.Purchase(ctx, usecase.PurchaseInput{
		CardID:     cards[0].card.ID(),
		MerchantID: shop.ID,
		Amount:     decimal.NewFromInt(50),
		Currency:   "EUR",
		PIN:        cards[0].pin,
	})
	if err != nil {
		return fmt.Errorf("purchase: %w", err)
	}
	descriptions = append(descriptions, purchase.Transaction.Description())

	withdrawn, err := d.cash(bank.Devices.WithdrawCash, d.atms[1], cards[1], 100, "EUR")
	if err != nil {
		return fmt.Errorf("withdraw cash: %w", err)
	}
	descriptions = append(descriptions, withdrawn.Transaction.Description())

	withdrawn, err = d.cash(bank.Devices.WithdrawCash, d.atms[0], cards[2], 50, "GBP")
	if err != nil {
		return fmt.Errorf("withdraw cash: %w", err)
	}
	descriptions = append(descriptions, withdrawn.Transaction.Description())

	heading.Fprintln(w, "\nTransactions:")
	for _, description := range descriptions {
		fmt.Fprintln(w, description)
	}

	if err := d.balances("After transactions", cards); err != nil {
		return err
	}

	start := time.UnixMilli(1678269600000).UTC()
	appointment, err := bank.Devices.BookAppointment(ctx, usecase.AppointmentInput{
		BranchID:   d.branches[0].ID(),
		CustomerID: customers[1].ID,
		Start:      start,
	})
	if err != nil {
		return fmt.Errorf("book appointment: %w", err)
	}
	cost, err := appointment.Cost()
	if err != nil {
		return fmt.Errorf("appointment cost: %w", err)
	}
	heading.Fprintln(w, "\nAppointment:")
	fmt.Fprintf(w, "%s booked an appointment that costs %s %s at %s on %s\n",
		customers[1].FullName(), cost.StringFixed(2), domain.ReferenceCurrency,
		d.branches[0].Location(), appointment.Start().Format(time.RFC1123))

	invoice, err := bank.Invoices.CreateInvoice(ctx, usecase.CreateInvoiceInput{
		IssuerID:    shop.ID,
		PayerID:     customers[2].ID,
		ToAccountID: shopAccounts[0].ID(),
		Amount:      decimal.NewFromInt(100),
		Currency:    "GBP",
	})
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	if _, err := bank.Invoices.AcceptInvoice(ctx, invoice.Number(), cards[2].card.Account().ID()); err != nil {
		return fmt.Errorf("accept invoice: %w", err)
	}
	if _, err := bank.Invoices.PayInvoice(ctx, invoice.Number()); err != nil {
		return fmt.Errorf("pay invoice: %w", err)
	}

	if err := d.balances("After paying invoice", cards[2:]); err != nil {
		return err
	}

	heading.Fprintln(w, "\nClosing:")
	if err := bank.Customers.RemoveCustomer(ctx, customers[0].ID); err != nil {
		fmt.Fprintf(w, "%s kept: %v\n", customers[0].FullName(), err)
	}
	for _, atm := range d.atms {
		released, err := bank.Devices.RemoveDevice(ctx, atm.ID())
		if err != nil {
			return fmt.Errorf("remove ATM: %w", err)
		}
		fmt.Fprintf(w, "ATM at %s removed, %s EUR returned\n", atm.Location(), released.StringFixed(2))
	}
	fmt.Fprintf(w, "Capital: %s EUR\n", bank.Devices.Capital().StringFixed(2))

	return nil
}

func (d *demo) customerWithAccounts(input usecase.AddCustomerInput, currencies ...string) (*domain.Customer, []*domain.Account, error) {
	customer, err := d.bank.Customers.AddCustomer(d.ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("add customer: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(currencies))
	for _, currency := range currencies {
		account, err := d.bank.Accounts.OpenAccount(d.ctx, usecase.OpenAccountInput{CustomerID: customer.ID, Currency: currency})
		if err != nil {
			return nil, nil, fmt.Errorf("open account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return customer, accounts, nil
}

type cashFunc func(context.Context, usecase.CashInput) (*usecase.TransferResult, error)

func (d *demo) cash(op cashFunc, atm *domain.ATM, c demoCard, amount int64, currency string) (*usecase.TransferResult, error) {
	return op(d.ctx, usecase.CashInput{
		DeviceID: atm.ID(),
		CardID:   c.card.ID(),
		Amount:   decimal.NewFromInt(amount),
		Currency: currency,
		PIN:      c.pin,
	})
}

func (d *demo) balances(title string, cards []demoCard) error {
	heading.Fprintf(d.w, "\n%s:\n", title)
	for _, c := range cards {
		inquiry, err := d.bank.Devices.CheckBalance(d.ctx, d.atms[0].ID(), c.card.ID(), c.pin)
		if err != nil {
			return fmt.Errorf("check balance: %w", err)
		}
		fmt.Fprintf(d.w, "%s: %s %s\n", c.card.Account().Owner().FullName(), inquiry.Balance.StringFixed(2), inquiry.Currency)
	}
	return nil
}

// printMetrics writes the bank's own metric families in the text format.
func printMetrics(w io.Writer, bank *app.Bank) error {
	families, err := bank.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	heading.Fprintln(w, "\nMetrics:")
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "gobank_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
