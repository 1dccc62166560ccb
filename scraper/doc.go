// Package scraper fetches a page, extracts its <title> and stores it in
// the scraped_data table.
//
//	spider, _ := scraper.NewSpider(cfg, scraper.NewRepository(db), metrics)
//	page, err := spider.Run(ctx)
package scraper
