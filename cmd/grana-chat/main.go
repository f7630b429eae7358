// Command grana-chat is a terminal client for the transaction interpreter:
// type a sentence like "gastei 50 reais no supermercado hoje", review the
// draft and commit it to the in-memory ledger.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"grana/internal/cli"
	"grana/internal/core"
	"grana/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	st := cli.InitStore(logger, cfg.SeedFile)
	ledger := services.NewLedger(st, st, st, cfg.InvestmentWalletID, logger)
	interp := services.NewInterpreter(cfg.InterpreterDelay)

	ctx := context.Background()
	wallets, err := ledger.Wallets(ctx)
	if err != nil || len(wallets) == 0 {
		fmt.Fprintln(os.Stderr, "no wallets available")
		os.Exit(1)
	}
	users, err := ledger.Users(ctx)
	if err != nil || len(users) == 0 {
		fmt.Fprintln(os.Stderr, "no users available")
		os.Exit(1)
	}
	userID := users[0].ID

	fmt.Println("grana — registre transações em linguagem natural")
	fmt.Println(`Exemplo: "gastei 50 reais no supermercado hoje". Digite "sair" para encerrar.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "sair" || line == "exit" {
			break
		}

		categories, err := ledger.Categories(ctx)
		if err != nil {
			fmt.Println("erro ao carregar categorias:", err)
			continue
		}
		draft, err := interp.Parse(ctx, line, categories)
		if errors.Is(err, services.ErrUnparseable) {
			fmt.Println(`Não entendi. Tente algo como "gastei 50 reais no supermercado".`)
			continue
		}
		if err != nil {
			fmt.Println("erro:", err)
			continue
		}

		printDraft(draft, categories)

		if draft.Nature == services.NatureAmbiguous {
			if askYesNo(scanner, "É uma transação recorrente (todo mês)?") {
				_ = draft.Resolve(services.NatureRecurring)
			} else {
				_ = draft.Resolve(services.NatureOneTime)
			}
		}

		walletID := chooseWallet(scanner, wallets)
		if !askYesNo(scanner, "Confirmar?") {
			fmt.Println("Descartado.")
			continue
		}

		added, err := ledger.CommitDraft(ctx, *draft, walletID, userID)
		if err != nil {
			fmt.Println("erro ao registrar:", err)
			continue
		}
		fmt.Printf("Registrado: %s de %s (#%s)\n",
			added.Description, core.FormatBRL(added.Amount), added.ID)
	}
}

func printDraft(d *services.Draft, categories []core.TransactionCategory) {
	kind := "Gasto"
	if d.Type == core.Income {
		kind = "Receita"
	}
	fmt.Printf("%s: %s — %s\n", kind, d.Description, core.FormatBRL(d.Amount))
	if name := categoryName(d.CategoryID, categories); name != "" {
		fmt.Println("Categoria:", name)
	}
	switch d.Nature {
	case services.NatureRecurring:
		fmt.Println("Recorrência: mensal")
	case services.NatureOneTime:
		fmt.Println("Recorrência: única")
	}
}

func categoryName(id string, categories []core.TransactionCategory) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func chooseWallet(scanner *bufio.Scanner, wallets []core.Wallet) string {
	fmt.Println("Carteira:")
	for i, w := range wallets {
		fmt.Printf("  %d) %s\n", i+1, w.Name)
	}
	fmt.Printf("Escolha [1-%d]: ", len(wallets))
	if !scanner.Scan() {
		return wallets[0].ID
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 1 || n > len(wallets) {
		return wallets[0].ID
	}
	return wallets[n-1].ID
}

func askYesNo(scanner *bufio.Scanner, question string) bool {
	fmt.Printf("%s (s/n): ", question)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "s" || answer == "sim"
}
