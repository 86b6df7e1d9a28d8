package main

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/storefront"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

const defaultGatewayURL = "http://localhost:4000"

func main() {
	// A .env next to the binary is optional
	_ = godotenv.Load()

	gatewayURL := flag.String("gateway", envOr("GATEWAY_URL", defaultGatewayURL), "order gateway base URL")
	size := flag.Int("size", 6, "catalog size")
	verbose := flag.Bool("v", false, "log gateway calls")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	state := storefront.NewState()
	client := storefront.NewGatewayClient(*gatewayURL, 60*time.Second)
	flow := storefront.NewCheckout(state, client, logger)

	fmt.Printf("🎨 Décalcomanie color store (gateway %s)\n", *gatewayURL)
	if err := flow.Refresh(context.Background(), *size); err != nil {
		fmt.Printf("❌ Could not load catalog: %v\n", err)
	} else {
		printCatalog(state)
	}
	printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if done := run(flow, state, *size, fields); done {
			return
		}
	}
}

func run(flow *storefront.Checkout, state *storefront.State, size int, args []string) bool {
	ctx := context.Background()

	switch args[0] {
	case "quit", "exit":
		return true
	case "help":
		printHelp()
	case "list":
		printCatalog(state)
	case "refresh":
		if err := flow.Refresh(ctx, size); err != nil {
			fmt.Printf("❌ %v\n", err)
			return false
		}
		printCatalog(state)
	case "add":
		if len(args) < 2 {
			fmt.Println("Usage: add <n>")
			return false
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("Usage: add <n>")
			return false
		}
		it, ok := state.CatalogItem(n)
		if !ok {
			fmt.Printf("No catalog item %d\n", n)
			return false
		}
		if state.Cart.Add(it) {
			fmt.Printf("✅ Added %s (#%s) $%s\n", it.Name, it.ID, it.Price)
		} else {
			fmt.Printf("#%s is already in the cart\n", it.ID)
		}
	case "remove":
		if len(args) < 2 {
			fmt.Println("Usage: remove <id>")
			return false
		}
		id := strings.ToUpper(strings.TrimPrefix(args[1], "#"))
		if !state.Cart.Remove(id) {
			fmt.Printf("#%s is not in the cart\n", id)
		}
	case "cart":
		printCart(state)
	case "form":
		for _, f := range storefront.FormFields {
			fmt.Printf("  %-10s %s\n", f, state.Form.Get(f))
		}
	case "set":
		if len(args) < 2 {
			fmt.Println("Usage: set <field> <value>")
			return false
		}
		if err := state.Form.Set(args[1], strings.Join(args[2:], " ")); err != nil {
			fmt.Printf("❌ %v (fields: %s)\n", err, strings.Join(storefront.FormFields, ", "))
		}
	case "checkout":
		orderID, err := flow.PlaceOrder(ctx)
		if err != nil {
			printError(err)
			return false
		}
		fmt.Printf("✅ PayPal order %s created for $%s\n", orderID, state.Cart.Total())
		fmt.Println("Approve it in PayPal, then run: capture")
	case "capture":
		id := ""
		if len(args) > 1 {
			id = args[1]
		}
		result, err := flow.Capture(ctx, id)
		if err != nil {
			printError(err)
			return false
		}
		var pretty map[string]any
		if json.Unmarshal(result, &pretty) == nil {
			fmt.Printf("✅ Captured, status %v\n", pretty["status"])
		} else {
			fmt.Println("✅ Captured")
		}
	case "status":
		id := ""
		if len(args) > 1 {
			id = args[1]
		}
		result, err := flow.Status(ctx, id)
		if err != nil {
			printError(err)
			return false
		}
		var order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(result, &order); err != nil {
			fmt.Printf("❌ Unexpected response: %s\n", result)
			return false
		}
		fmt.Printf("📦 Order %s is %s\n", order.ID, order.Status)
	default:
		fmt.Printf("Unknown command %q\n", args[0])
		printHelp()
	}
	return false
}

func printCatalog(state *storefront.State) {
	items := state.Catalog()
	if len(items) == 0 {
		fmt.Println("Catalog is empty, try: refresh")
		return
	}
	for i, it := range items {
		mark := " "
		if state.Cart.Contains(it.ID) {
			mark = "*"
		}
		fmt.Printf("%s %2d. #%s  %-28s $%s\n", mark, i+1, it.ID, it.Name, it.Price)
	}
}

func printCart(state *storefront.State) {
	items := state.Cart.Items()
	if len(items) == 0 {
		fmt.Println("🛒 Cart is empty")
		return
	}
	fmt.Printf("🛒 %d item(s)\n", len(items))
	for _, it := range items {
		fmt.Printf("  #%s  %-28s $%s\n", it.ID, it.Name, it.Price)
	}
	fmt.Printf("  Total: $%s\n", state.Cart.Total())
}

func printError(err error) {
	var verr *errors.ErrValidation
	if stderrors.As(err, &verr) {
		fmt.Printf("❌ %s\n", verr.Message)
		names := make([]string, 0, len(verr.Fields))
		for name := range verr.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("   %s: %s\n", name, verr.Fields[name])
		}
		return
	}
	fmt.Printf("❌ %v\n", err)
}

func printHelp() {
	fmt.Println("Commands: list | refresh | add <n> | remove <id> | cart | form | set <field> <value> | checkout | status [order-id] | capture [order-id] | quit")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
