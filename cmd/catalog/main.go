/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command catalog opens the catalog store, runs one read command against it
// and prints the result as JSON.
//
//	catalog [flags] products
//	catalog [flags] search <text>
//	catalog [flags] categories
//	catalog [flags] get <product-id>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bretuobay/web-evolution/catalog"
	"github.com/bretuobay/web-evolution/catalog/database"
	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/utils"
)

type options struct {
	page     int
	pageSize int
	category int64
	search   string
	limit    int
}

func main() {
	if err := loadEnvFiles(os.Getenv("APP_ENV")); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env file: %v\n", err)
		os.Exit(1)
	}
	app := loadAppConfig()

	utils.ConfigureOutput(os.Stderr)
	utils.ConfigureConsoleLogFormat(app.LogFormat)
	utils.ConfigureLogLevel(app.LogLevel)
	log := utils.NewLogger("CATALOG")

	fsFlags := flag.NewFlagSet("catalog", flag.ExitOnError)
	var opts options
	fsFlags.IntVar(&opts.page, "page", 0, "page number (products)")
	fsFlags.IntVar(&opts.pageSize, "size", 0, "page size (products)")
	fsFlags.Int64Var(&opts.category, "category", 0, "category id filter (products)")
	fsFlags.StringVar(&opts.search, "q", "", "search text filter (products)")
	fsFlags.IntVar(&opts.limit, "limit", 10, "maximum results (search)")
	fsFlags.StringVar(&app.ConfigPath, "config", app.ConfigPath, "database config file (YAML)")
	_ = fsFlags.Parse(os.Args[1:])

	if err := run(context.Background(), app, opts, fsFlags.Args(), os.Stdout); err != nil {
		log.WithError(err).Error("catalog command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, app *AppConfig, opts options, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command: products, search, categories or get")
	}

	cfg, err := app.databaseConfig()
	if err != nil {
		return err
	}

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := execute(ctx, catalog.NewStoreService(store), opts, args)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func execute(ctx context.Context, svc catalog.Service, opts options, args []string) (interface{}, error) {
	switch args[0] {
	case "products":
		query := &model.ProductQuery{Search: opts.search}
		if opts.page != 0 {
			query.Page = &opts.page
		}
		if opts.pageSize != 0 {
			query.PageSize = &opts.pageSize
		}
		if opts.category != 0 {
			query.CategoryID = &opts.category
		}
		return svc.ListProducts(ctx, query)
	case "search":
		if len(args) < 2 {
			return nil, fmt.Errorf("search needs a text argument")
		}
		return svc.SearchProducts(ctx, args[1], opts.limit)
	case "categories":
		return svc.ListCategories(ctx)
	case "get":
		if len(args) < 2 {
			return nil, fmt.Errorf("get needs a product id")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", args[1], err)
		}
		p, err := svc.GetProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("product %d not found", id)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", args[0])
	}
}
