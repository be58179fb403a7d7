package main

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"wardrobe101/internal/adapter/marketplace"
	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/infrastructure/websocket"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

func withApp(action func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := newApp(c, os.Stdout)
		if err != nil {
			return err
		}
		return action(c, a)
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			sess, err := a.sessions.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			a.printf("%s\n", signedInLine(sess))
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: withApp(func(c *cli.Context, a *app) error {
			if err := a.sessions.Logout(); err != nil {
				return err
			}
			a.printf("Signed out\n")
			return nil
		}),
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "name", Required: true},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			user, err := a.api.Signup(c.Context, marketplace.SignupRequest{
				Email:    c.String("email"),
				Password: c.String("password"),
				Name:     c.String("name"),
			})
			if err != nil {
				return err
			}
			a.printf("Account %s created for %s. Run `wardrobe login` to sign in.\n", user.ID, user.Email)
			return nil
		}),
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed in account",
		Action: withApp(func(c *cli.Context, a *app) error {
			user, err := a.sessions.Verify(c.Context)
			if err != nil {
				return err
			}
			a.printf("%s <%s> (%s)\n", user.Name, user.Email, user.ID)
			a.printf("  trust score %d\n", user.TrustScore)
			a.printf("  wallet %s, in escrow %s\n", price(&user.WalletBalance), price(&user.EscrowBalance))
			return nil
		}),
	}
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "list the catalogue",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "q", Usage: "search title and brand"},
			&cli.StringFlag{Name: "category", Value: usecase.FilterAll},
			&cli.StringFlag{Name: "type", Value: usecase.FilterAll, Usage: "sale, rent or all"},
			&cli.StringFlag{Name: "size", Value: usecase.FilterAll},
			&cli.Float64Flag{Name: "min", Usage: "minimum price"},
			&cli.Float64Flag{Name: "max", Usage: "maximum price"},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			filter := usecase.Filter{
				Search:   c.String("q"),
				Category: c.String("category"),
				Type:     c.String("type"),
				Size:     c.String("size"),
			}
			if c.IsSet("min") || c.IsSet("max") {
				max := math.MaxFloat64
				if c.IsSet("max") {
					max = c.Float64("max")
				}
				filter.Price = &usecase.PriceRange{Min: c.Float64("min"), Max: max}
			}

			res := a.catalog.Browse(c.Context, filter)
			if res.Err != nil {
				a.printf("Could not load the catalogue: %s\n", errors.UserMessage(res.Err))
			}
			printItems(a.out, res.Items)
			return nil
		}),
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show one listing",
		ArgsUsage: "ITEM_ID",
		Action: withApp(func(c *cli.Context, a *app) error {
			if c.Args().Len() != 1 {
				return errors.BadRequest("show takes exactly one item id", nil)
			}
			item, err := a.catalog.Get(c.Context, entity.ItemID(c.Args().First()))
			if err != nil {
				return err
			}
			printItem(a.out, item)
			return nil
		}),
	}
}

// sellerID is the --seller flag, or the signed in user's id.
func sellerID(c *cli.Context, a *app) (string, error) {
	if id := c.String("seller"); id != "" {
		return id, nil
	}
	user, err := a.sessions.Verify(c.Context)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func myListingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "my-listings",
		Usage: "show current and past listings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seller", Usage: "seller id (defaults to the signed in user)"},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			id, err := sellerID(c, a)
			if err != nil {
				return err
			}
			overview, err := a.catalog.MyListings(c.Context, id)
			if err != nil {
				return err
			}
			printOverview(a.out, overview)
			return nil
		}),
	}
}

func sellCommand() *cli.Command {
	return &cli.Command{
		Name:  "sell",
		Usage: "submit a listing draft for verification",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "draft", Required: true, Usage: "YAML draft with image paths"},
			&cli.BoolFlag{Name: "confirm-handover", Usage: "confirm the item is authentic and ready for courier pickup"},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			draft, err := loadDraft(c.Path("draft"))
			if err != nil {
				return err
			}

			wizard := usecase.NewListingWizardFrom(draft)
			for wizard.Step() != usecase.StepHandover {
				res := wizard.Advance()
				if !res.Passed {
					return errors.Validation(res.Problems...)
				}
				a.printf("%s ok\n", res.From)
			}
			suggested := wizard.SuggestedPricing()
			if suggested.Rent > 0 {
				a.printf("Suggested rent %s with deposit %s\n",
					price(&suggested.Rent), price(&suggested.Deposit))
			}
			if c.Bool("confirm-handover") {
				wizard.AcceptHandover()
			}

			navigator := newTerminalNavigator()
			pipeline := usecase.NewSubmissionPipeline(a.api, a.sessions, terminalObserver{out: a.out}, navigator, a.cfg.SubmitRedirectDelay)
			result, err := pipeline.SubmitFromWizard(c.Context, wizard)
			if err != nil {
				return err
			}
			if result.Session == entity.SessionFromDevSeed {
				logger.Warn("Submitted with the development seed account")
			}

			seller, ok := navigator.wait(a.cfg.SubmitRedirectDelay + 5*time.Second)
			if !ok {
				return nil
			}
			overview, err := a.catalog.MyListings(c.Context, seller)
			if err != nil {
				return err
			}
			a.printf("\n")
			printOverview(a.out, overview)
			return nil
		}),
	}
}

func checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "buy or rent a listing",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "item", Required: true},
			&cli.StringFlag{Name: "kind", Value: string(entity.KindBuy), Usage: "buy or rent"},
			&cli.StringFlag{Name: "street", Required: true},
			&cli.StringFlag{Name: "city", Required: true},
			&cli.StringFlag{Name: "zip", Required: true},
			&cli.StringFlag{Name: "payment", Value: string(entity.PaymentCard), Usage: "card, upi or cod"},
			&cli.BoolFlag{Name: "record", Value: true, Usage: "record the order with the marketplace"},
			&cli.BoolFlag{Name: "chat", Value: true, Usage: "open a chat with the seller"},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			ctx := c.Context
			item, err := a.catalog.Get(ctx, entity.ItemID(c.String("item")))
			if err != nil {
				return err
			}

			var recorder usecase.OrderRecorder
			if c.Bool("record") {
				recorder = a.api
			}
			var chat *usecase.ChatUseCase
			if c.Bool("chat") {
				chat = a.openChat(ctx)
			}

			flow := usecase.NewCheckoutFlow(a.sessions, recorder, chat)
			kind := entity.TransactionKind(c.String("kind"))
			intent, err := flow.Open(item, kind)
			if err != nil {
				return err
			}
			if chat != nil {
				flow.AttachThread(chat.Seed(ctx, entity.ChatSeedContext{
					ItemID:          item.ID,
					Title:           item.Title,
					Price:           intent.Amount,
					SellerID:        item.SellerID,
					TransactionType: kind,
				}))
			}
			if err := flow.SetDelivery(entity.DeliveryAddress{
				Street: c.String("street"),
				City:   c.String("city"),
				Zip:    c.String("zip"),
			}); err != nil {
				return err
			}
			if err := flow.SetPaymentMethod(entity.PaymentMethod(c.String("payment"))); err != nil {
				return err
			}

			confirmation, err := flow.Confirm(ctx)
			if err != nil {
				return err
			}
			printConfirmation(a.out, confirmation)
			return nil
		}),
	}
}

// openChat returns a chat workflow over the hub, or a local one if the hub is unreachable.
func (a *app) openChat(ctx context.Context) *usecase.ChatUseCase {
	client, err := a.dialChat(ctx)
	if err != nil {
		logger.Warn("Chat unavailable, messages stay local: %s", errors.UserMessage(err))
		return usecase.NewChatUseCase(nil)
	}
	go func() {
		<-ctx.Done()
		client.Close()
	}()
	return usecase.NewChatUseCase(client)
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "list orders you placed or received",
		Action: withApp(func(c *cli.Context, a *app) error {
			sess, err := a.sessions.Resolve(c.Context)
			if err != nil {
				return err
			}
			orders, err := a.api.ListOrders(c.Context, sess.Token)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				a.printf("No orders yet.\n")
				return nil
			}
			for _, o := range orders {
				a.printf("%s  item %s  %s  %s  escrow %s\n", o.ID, o.ItemID, o.Type, o.Status, price(&o.EscrowAmount))
			}
			return nil
		}),
	}
}

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "chat with the seller of a listing; type lines, Ctrl-D to leave",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "item", Required: true},
			&cli.StringFlag{Name: "kind", Value: string(entity.KindBuy), Usage: "buy or rent"},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			item, err := a.catalog.Get(ctx, entity.ItemID(c.String("item")))
			if err != nil {
				return err
			}
			kind := entity.TransactionKind(c.String("kind"))
			seedPrice := item.SalePrice
			if kind == entity.KindRent {
				seedPrice = item.RentPrice
			}
			if seedPrice == nil {
				return errors.BadRequest(fmt.Sprintf("%s is not offered for %s", item.Title, kind), nil)
			}

			client, err := a.dialChat(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			chat := usecase.NewChatUseCase(client)
			thread := chat.Seed(ctx, entity.ChatSeedContext{
				ItemID:          item.ID,
				Title:           item.Title,
				Price:           *seedPrice,
				SellerID:        item.SellerID,
				TransactionType: kind,
			})
			a.printf("me: %s\n", thread.Messages[0].Text)

			incoming := make(chan entity.ChatMessage)
			go func() {
				err := client.Listen(ctx, websocket.Handlers{
					OnMessage: func(m entity.ChatMessage) {
						select {
						case incoming <- m:
						case <-ctx.Done():
						}
					},
					OnError: func(s string) { logger.Warn("chat: %s", s) },
				})
				if err != nil && ctx.Err() == nil {
					logger.Error("Chat connection lost: %v", err)
				}
				cancel()
			}()

			lines := make(chan string)
			go func() {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					lines <- scanner.Text()
				}
				close(lines)
			}()

			for {
				select {
				case msg := <-incoming:
					chat.Receive(thread, msg)
					a.printf("%s: %s\n", msg.SenderID, msg.Text)
				case line, ok := <-lines:
					if !ok {
						return nil
					}
					if strings.TrimSpace(line) == "" {
						continue
					}
					if _, err := chat.Send(ctx, thread, line); err != nil {
						a.printf("%s\n", describeError(err))
					}
				case <-ctx.Done():
					return nil
				}
			}
		}),
	}
}

func themeCommand() *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "show or set the theme preference",
		ArgsUsage: "[light|dark|system]",
		Action: withApp(func(c *cli.Context, a *app) error {
			if c.Args().Len() == 0 {
				a.printf("%s\n", a.sessions.Theme())
				return nil
			}
			if err := a.sessions.SetTheme(entity.Theme(c.Args().First())); err != nil {
				return err
			}
			a.printf("Theme set to %s\n", c.Args().First())
			return nil
		}),
	}
}
