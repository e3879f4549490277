package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/config"
	"github.com/fjordbank/teller/internal/ledger"
	"github.com/fjordbank/teller/internal/model"
	"github.com/fjordbank/teller/internal/processor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	// Request/error logs stay out of the way unless asked for.
	if os.Getenv("TELLER_VERBOSE") != "1" {
		logger = slog.New(slog.DiscardHandler)
	}

	gw := ledger.NewGateway(ledger.Config{BaseURL: cfg.LedgerURL, Timeout: cfg.LedgerTimeout}, logger)
	client := ledger.NewClient(gw, ledger.NewFallbackPolicy(), logger)
	orchestrator := processor.NewTransferOrchestrator(client, logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "list":
		err = runList(ctx, client)
	case "get":
		err = runGet(ctx, client, os.Args[2:])
	case "create":
		err = runCreate(ctx, client, os.Args[2:])
	case "deposit":
		err = runMutation(ctx, client.Deposit, os.Args[2:])
	case "withdraw":
		err = runMutation(ctx, client.Withdraw, os.Args[2:])
	case "delete":
		err = runDelete(ctx, client, os.Args[2:])
	case "transfer":
		err = runTransfer(ctx, client, orchestrator, os.Args[2:])
	case "history":
		err = runHistory(ctx, client, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: teller <command> [args]

commands:
  list                            show all accounts
  get <number>                    show one account
  create <holder> <balance>       open a new account
  deposit <number> <amount>       credit an account
  withdraw <number> <amount>      debit an account
  delete <number>                 remove an account
  transfer <from> <to> <amount>   move funds between accounts
  history <number>                show recent transactions`)
}

func runList(ctx context.Context, client *ledger.Client) error {
	accounts, err := client.List(ctx)
	if err != nil {
		return err
	}
	printAccounts(accounts)
	return nil
}

func runGet(ctx context.Context, client *ledger.Client, args []string) error {
	number, err := parseNumber(args, 0)
	if err != nil {
		return err
	}
	account, err := client.Get(ctx, number)
	if err != nil {
		return err
	}
	printAccounts([]model.Account{*account})
	return nil
}

func runCreate(ctx context.Context, client *ledger.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("create needs a holder name and an initial balance")
	}
	balance, err := decimal.NewFromString(args[1])
	if err != nil || balance.IsNegative() {
		return model.ErrNegativeBalance
	}
	req := model.CreateAccountRequest{AccountHolderName: args[0], AccountBalance: balance}
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := client.Create(ctx, req.AccountHolderName, req.AccountBalance)
	if err != nil {
		return err
	}
	fmt.Printf("created account #%d for %s with balance $%s\n",
		account.AccountNumber, account.AccountHolderName, account.AccountBalance.StringFixed(2))
	return refreshList(ctx, client)
}

type mutationFunc func(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error)

func runMutation(ctx context.Context, mutate mutationFunc, args []string) error {
	number, err := parseNumber(args, 0)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return model.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil || !amount.IsPositive() {
		return model.ErrInvalidAmount
	}

	account, err := mutate(ctx, number, amount)
	if err != nil {
		return err
	}
	fmt.Printf("account #%d balance is now $%s\n", account.AccountNumber, account.AccountBalance.StringFixed(2))
	return nil
}

func runDelete(ctx context.Context, client *ledger.Client, args []string) error {
	number, err := parseNumber(args, 0)
	if err != nil {
		return err
	}
	message, err := client.Delete(ctx, number)
	if err != nil {
		return err
	}
	fmt.Println(message)
	return refreshList(ctx, client)
}

func runTransfer(ctx context.Context, client *ledger.Client, orchestrator *processor.TransferOrchestrator, args []string) error {
	if len(args) < 3 {
		return model.ErrMissingField
	}
	result, err := orchestrator.Execute(ctx, processor.TransferRequest{
		FromAccount: args[0],
		ToAccount:   args[1],
		Amount:      args[2],
	})
	if err != nil {
		return err
	}
	fmt.Println(result.Message())
	return refreshList(ctx, client)
}

func runHistory(ctx context.Context, client *ledger.Client, args []string) error {
	number, err := parseNumber(args, 0)
	if err != nil {
		return err
	}
	account, err := client.Get(ctx, number)
	if err != nil {
		return err
	}

	fmt.Printf("recent transactions for account #%d (%s):\n", account.AccountNumber, account.AccountHolderName)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, tx := range model.DemoHistory(time.Now()) {
		fmt.Fprintf(w, "%s\t%s\t$%s\t%s\n",
			tx.Date.Format("Jan 2 2006 15:04"), tx.Type, tx.Amount.StringFixed(2), tx.Description)
	}
	return w.Flush()
}

// refreshList re-fetches and prints the full account list after a mutation;
// balances are never derived locally.
func refreshList(ctx context.Context, client *ledger.Client) error {
	accounts, err := client.List(ctx)
	if err != nil {
		return err
	}
	printAccounts(accounts)
	return nil
}

func printAccounts(accounts []model.Account) {
	if len(accounts) == 0 {
		fmt.Println("no accounts")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tHOLDER\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(w, "#%d\t%s\t$%s\n", a.AccountNumber, a.AccountHolderName, a.AccountBalance.StringFixed(2))
	}
	w.Flush()
}

func parseNumber(args []string, index int) (int64, error) {
	if len(args) <= index {
		return 0, model.ErrInvalidAccountRef
	}
	number, err := strconv.ParseInt(args[index], 10, 64)
	if err != nil {
		return 0, model.ErrInvalidAccountRef
	}
	return number, nil
}
