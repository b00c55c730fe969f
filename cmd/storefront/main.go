package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/internal/admin"
	"github.com/zaimara-studio/storefront/internal/api"
	"github.com/zaimara-studio/storefront/internal/cart"
	"github.com/zaimara-studio/storefront/internal/catalog"
	"github.com/zaimara-studio/storefront/internal/checkout"
	"github.com/zaimara-studio/storefront/internal/coupons"
	"github.com/zaimara-studio/storefront/internal/payments"
	"github.com/zaimara-studio/storefront/internal/reviews"
	"github.com/zaimara-studio/storefront/internal/tracking"
	"github.com/zaimara-studio/storefront/pkg/config"
	"github.com/zaimara-studio/storefront/pkg/enums"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/metrics"
	"github.com/zaimara-studio/storefront/pkg/statestore"
	"github.com/zaimara-studio/storefront/pkg/types"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	_ = godotenv.Load()

	// Flags
	cmd := flag.String("cmd", "products", "command: products|product|reviews|cart-add|cart-remove|cart-show|protect|coupon|coupon-remove|checkout|instructions|pay|track|admin-verify")

	// Command-specific flags
	search := flag.String("search", "", "product search term (for products)")
	category := flag.String("category", "", "category filter (for products)")
	page := flag.Int("page", 1, "result page (for products)")
	limit := flag.Int("limit", 20, "page size (for products)")
	id := flag.String("id", "", "product id (for product, reviews, cart-add, cart-remove)")
	size := flag.String("size", "", "product size (for cart-add, cart-remove)")
	qty := flag.Int("qty", 1, "quantity (for cart-add)")
	enabled := flag.Bool("enabled", true, "toggle value (for protect)")
	code := flag.String("code", "", "coupon code (for coupon)")
	orderNumber := flag.String("order", "", "order number (for track, instructions, pay)")
	email := flag.String("email", "", "order email (for track, checkout)")
	firstName := flag.String("first-name", "", "customer first name (for checkout)")
	lastName := flag.String("last-name", "", "customer last name (for checkout)")
	phone := flag.String("phone", "", "customer phone (for checkout)")
	address := flag.String("address", "", "shipping address (for checkout)")
	city := flag.String("city", "", "shipping city (for checkout)")
	postalCode := flag.String("postal-code", "", "shipping postal code (for checkout)")
	country := flag.String("country", "Pakistan", "shipping country (for checkout)")
	method := flag.String("method", "", "payment method (for checkout)")
	notes := flag.String("notes", "", "order or payment notes (for checkout, pay)")
	transactionID := flag.String("tx", "", "transaction id (for pay)")
	receipt := flag.String("receipt", "", "receipt image path (for pay)")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	state, err := statestore.Open(ctx, cfg)
	requireResource(ctx, logg, "state store", err)

	callStats := metrics.NewAPICallMetrics(prometheus.NewRegistry())
	tokens := admin.NewTokenStore(state, logg)

	client, err := api.NewClient(cfg.API,
		api.WithLogger(logg),
		api.WithMetrics(callStats),
		api.WithTokenSource(tokens),
	)
	requireResource(ctx, logg, "api client", err)

	loadCart := func() *cart.Store {
		fee, err := decimal.NewFromString(cfg.Shipping.ProtectionFee)
		requireResource(ctx, logg, "shipping protection fee", err)
		basket := cart.NewStore(state, logg, fee)
		basket.Load(ctx)
		return basket
	}

	switch *cmd {
	case "products":
		catalogSvc, err := catalog.NewService(client)
		requireResource(ctx, logg, "catalog", err)
		result, err := catalogSvc.List(ctx, catalog.ListParams{
			Search:   *search,
			Category: *category,
			Page:     *page,
			Limit:    *limit,
		})
		requireResult(ctx, logg, "listing products", err)
		printJSON(result)

	case "product":
		if *id == "" {
			fmt.Fprintln(os.Stderr, "missing -id for product")
			os.Exit(1)
		}
		catalogSvc, err := catalog.NewService(client)
		requireResource(ctx, logg, "catalog", err)
		product, err := catalogSvc.Get(ctx, *id)
		requireResult(ctx, logg, "fetching product", err)
		printJSON(product)

	case "cart-add":
		if *id == "" {
			fmt.Fprintln(os.Stderr, "missing -id for cart-add")
			os.Exit(1)
		}
		catalogSvc, err := catalog.NewService(client)
		requireResource(ctx, logg, "catalog", err)
		product, err := catalogSvc.Get(ctx, *id)
		requireResult(ctx, logg, "fetching product", err)
		basket := loadCart()
		basket.Add(ctx, *product, *size, *qty)
		printJSON(cartView(basket))

	case "cart-remove":
		if *id == "" {
			fmt.Fprintln(os.Stderr, "missing -id for cart-remove")
			os.Exit(1)
		}
		basket := loadCart()
		basket.Remove(ctx, *id, *size)
		printJSON(cartView(basket))

	case "cart-show":
		printJSON(cartView(loadCart()))

	case "protect":
		basket := loadCart()
		basket.SetShippingProtection(*enabled)
		printJSON(cartView(basket))

	case "coupon":
		if *code == "" {
			fmt.Fprintln(os.Stderr, "missing -code for coupon")
			os.Exit(1)
		}
		basket := loadCart()
		couponSvc, err := coupons.NewService(client, basket)
		requireResource(ctx, logg, "coupons", err)
		discount, err := couponSvc.Apply(ctx, *code)
		requireResult(ctx, logg, "applying coupon", err)
		printJSON(struct {
			Discount types.Discount `json:"discount"`
			Cart     any            `json:"cart"`
		}{discount, cartView(basket)})

	case "coupon-remove":
		basket := loadCart()
		couponSvc, err := coupons.NewService(client, basket)
		requireResource(ctx, logg, "coupons", err)
		couponSvc.Remove()
		printJSON(cartView(basket))

	case "checkout":
		methodValue, err := enums.ParsePaymentMethod(*method)
		requireResult(ctx, logg, "parsing payment method", err)
		basket := loadCart()
		checkoutSvc, err := checkout.NewService(basket, client, stdinConfirmer{in: bufio.NewReader(os.Stdin)}, state, logg)
		requireResource(ctx, logg, "checkout", err)
		order, err := checkoutSvc.Submit(ctx, checkout.Input{
			CustomerInfo: types.CustomerInfo{
				FirstName:  *firstName,
				LastName:   *lastName,
				Email:      *email,
				Phone:      *phone,
				Address:    *address,
				City:       *city,
				PostalCode: *postalCode,
				Country:    *country,
			},
			PaymentMethod: methodValue,
			Notes:         *notes,
		})
		if err == checkout.ErrConfirmationDeclined {
			fmt.Fprintln(os.Stderr, "checkout cancelled")
			os.Exit(1)
		}
		requireResult(ctx, logg, "submitting order", err)
		printJSON(order)

	case "instructions":
		if *orderNumber == "" {
			fmt.Fprintln(os.Stderr, "missing -order for instructions")
			os.Exit(1)
		}
		paymentSvc := payments.NewService(client, state, logg)
		order, err := paymentSvc.Instructions(ctx, *orderNumber)
		requireResult(ctx, logg, "fetching payment instructions", err)
		printJSON(order)

	case "pay":
		if *orderNumber == "" {
			fmt.Fprintln(os.Stderr, "missing -order for pay")
			os.Exit(1)
		}
		proof := api.PaymentProof{TransactionID: *transactionID, Notes: *notes}
		if *receipt != "" {
			file, err := os.Open(*receipt)
			requireResource(ctx, logg, "receipt image", err)
			defer file.Close()
			proof.Receipt = file
			proof.ReceiptFilename = filepath.Base(*receipt)
		}
		paymentSvc := payments.NewService(client, state, logg)
		order, err := paymentSvc.ConfirmProof(ctx, *orderNumber, proof)
		requireResult(ctx, logg, "submitting payment proof", err)
		printJSON(order)

	case "track":
		if *orderNumber == "" || *email == "" {
			fmt.Fprintln(os.Stderr, "missing -order or -email for track")
			os.Exit(1)
		}
		trackingSvc := tracking.NewService(client, state, logg)
		order, err := trackingSvc.Track(ctx, *orderNumber, *email)
		requireResult(ctx, logg, "tracking order", err)
		printJSON(struct {
			Order any `json:"order"`
			Steps any `json:"steps"`
		}{order, tracking.Progress(order)})

	case "reviews":
		if *id == "" {
			fmt.Fprintln(os.Stderr, "missing -id for reviews")
			os.Exit(1)
		}
		reviewSvc := reviews.NewService(client)
		list, err := reviewSvc.ForProduct(ctx, *id)
		requireResult(ctx, logg, "listing reviews", err)
		printJSON(list)

	case "admin-verify":
		adminSvc := admin.NewService(client, tokens, logg)
		info, err := adminSvc.Verify(ctx)
		requireResult(ctx, logg, "verifying admin session", err)
		printJSON(info)

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

// stdinConfirmer asks on the terminal before a cash-on-delivery order goes out.
type stdinConfirmer struct {
	in *bufio.Reader
}

func (c stdinConfirmer) ConfirmCOD(ctx context.Context, draft types.OrderDraft) (bool, error) {
	fmt.Printf("Place cash-on-delivery order for %s? [y/N]: ", draft.Total)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func cartView(basket *cart.Store) any {
	return struct {
		Items      []types.CartItem         `json:"items"`
		Protection types.ShippingProtection `json:"shippingProtection"`
		Discount   types.Discount           `json:"discount"`
		Subtotal   decimal.Decimal          `json:"subtotal"`
		Total      decimal.Decimal          `json:"total"`
	}{
		Items:      basket.Items(),
		Protection: basket.ShippingProtection(),
		Discount:   basket.Discount(),
		Subtotal:   basket.Subtotal(),
		Total:      basket.Total(),
	}
}

func printJSON(value any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		fmt.Fprintf(os.Stderr, "encoding output: %v\n", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

func requireResult(ctx context.Context, logg *logger.Logger, action string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("%s failed", action), err)
	os.Exit(1)
}
