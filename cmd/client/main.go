// Command client is a terminal browse client for the Apartments API. It
// fetches the listing snapshot once and filters it in memory; only admin
// actions and explicit fetches hit the network again.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tatertot/apartmentsapi/api/apartment"
	"github.com/tatertot/apartmentsapi/client"
)

const usage = `commands:
  apply                                     render rows matching the current filter
  clear                                     reset all filters and re-render
  name <query>                              substring name filter ("-" to unset)
  price <min> <max>                         price range ("-" for open end)
  sqft <min> <max>                          square footage range
  beds <n>                                  exact bedrooms ("-" to unset)
  baths <n>                                 exact bathrooms
  d1 <max>                                  max distance to reference point 1
  d2 <max>                                  max distance to reference point 2 (dev only)
  fetch                                     re-fetch the snapshot
  login <username> <password>               log in (re-fetches the snapshot)
  logout                                    log out (re-fetches the snapshot)
  me                                        show the current identity
  add <name> <price> <sqft> <beds> <baths> <d1> <d2> [url]
  del <id>
  quit`

type browser struct {
	api    *client.Client
	snap   *client.Snapshot
	filter client.Filter
}

func main() {
	server := flag.String("server", "http://localhost:3000", "apartments API base URL")
	flag.Parse()

	api, err := client.New(*server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	b := &browser{api: api}
	ctx := context.Background()

	if err := b.refetch(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error loading apartments: %v\n", err)
		os.Exit(1)
	}
	b.render()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return
		}
		if line != "" {
			if err := b.exec(ctx, strings.Fields(line)); err != nil {
				fmt.Printf("error: %v\n", err)
			}
		}
		fmt.Print("> ")
	}
}

func (b *browser) exec(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help":
		fmt.Println(usage)

	case "apply":
		b.render()

	case "clear":
		b.filter.Clear()
		b.render()

	case "name":
		if len(rest) == 0 || rest[0] == "-" {
			b.filter.Name = ""
		} else {
			b.filter.Name = strings.Join(rest, " ")
		}

	case "price":
		return setRange(rest, &b.filter.PriceMin, &b.filter.PriceMax)

	case "sqft":
		return setRange(rest, &b.filter.SqftMin, &b.filter.SqftMax)

	case "beds":
		return setMax(rest, &b.filter.Bedrooms)

	case "baths":
		return setMax(rest, &b.filter.Bathrooms)

	case "d1":
		return setMax(rest, &b.filter.Distance1Max)

	case "d2":
		return setMax(rest, &b.filter.Distance2Max)

	case "fetch":
		if err := b.refetch(ctx); err != nil {
			return err
		}
		b.render()

	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("usage: login <username> <password>")
		}
		if err := b.api.Login(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("login ok")
		if err := b.refetch(ctx); err != nil {
			return err
		}
		b.render()

	case "logout":
		if err := b.api.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		if err := b.refetch(ctx); err != nil {
			return err
		}
		b.render()

	case "me":
		id, err := b.api.WhoAmI(ctx)
		if err != nil {
			return err
		}
		if id.Username == "" {
			fmt.Println("not logged in")
		} else {
			fmt.Printf("logged in as %s (dev: %v)\n", id.Username, id.IsDev)
		}

	case "add":
		return b.add(ctx, rest)

	case "del":
		if len(rest) != 1 {
			return fmt.Errorf("usage: del <id>")
		}
		id, err := strconv.ParseUint(rest[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid id %q", rest[0])
		}
		if err := b.api.DeleteApartment(ctx, uint(id)); err != nil {
			return err
		}
		fmt.Println("deleted")
		if err := b.refetch(ctx); err != nil {
			return err
		}
		b.render()

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}

	return nil
}

func (b *browser) add(ctx context.Context, rest []string) error {
	if len(rest) < 7 {
		return fmt.Errorf("usage: add <name> <price> <sqft> <beds> <baths> <d1> <d2> [url]")
	}

	nums := make([]float64, 6)
	for i, s := range rest[1:7] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		nums[i] = v
	}

	req := apartment.CreateRequest{
		Name:          &rest[0],
		Price:         &nums[0],
		SquareFootage: &nums[1],
		Bedrooms:      &nums[2],
		Bathrooms:     &nums[3],
		Distance1:     &nums[4],
		Distance2:     &nums[5],
	}
	if len(rest) > 7 {
		req.URL = &rest[7]
	}

	apt, err := b.api.AddApartment(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("added apartment %d\n", apt.ID)

	if err := b.refetch(ctx); err != nil {
		return err
	}
	b.render()
	return nil
}

// refetch replaces the snapshot. On failure the previous snapshot stays in
// place, so the last render remains valid.
func (b *browser) refetch(ctx context.Context) error {
	snap, err := b.api.FetchApartments(ctx)
	if err != nil {
		return err
	}
	b.snap = snap
	return nil
}

func (b *browser) render() {
	rows := client.Apply(b.snap.Rows, b.filter, b.snap.IsDev)
	client.RenderTable(os.Stdout, rows, b.snap.IsDev)
}

func setRange(args []string, min, max **float64) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <min> <max>")
	}
	lo, err := parseOptFloat(args[0])
	if err != nil {
		return err
	}
	hi, err := parseOptFloat(args[1])
	if err != nil {
		return err
	}
	*min, *max = lo, hi
	return nil
}

func setMax(args []string, v **float64) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one value")
	}
	f, err := parseOptFloat(args[0])
	if err != nil {
		return err
	}
	*v = f
	return nil
}

func parseOptFloat(s string) (*float64, error) {
	if s == "" || s == "-" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}
