package config

// Built-in source list and keyword sets, used whenever the corresponding
// section of the sources file is absent.

func defaultFeeds() []FeedEndpoint {
	return []FeedEndpoint{
		{Name: "CNBC", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Priority: 1},
		{Name: "Yahoo Finance", URL: "https://feeds.finance.yahoo.com/rss/2.0/headline", Priority: 1},
		{Name: "IBD", URL: "https://feeds.investors.com/feeds/ibd-top-10.xml", Priority: 1},
		{Name: "Financial Express", URL: "https://www.financialexpress.com/feed/", Priority: 2},
		{Name: "Business Insider", URL: "https://feeds.businessinsider.com/markets/news", Priority: 2},
		{Name: "The Motley Fool", URL: "https://feeds.fool.com/foolscoop/index.xml", Priority: 2},
	}
}

func defaultScrapePages() []ScrapePage {
	return []ScrapePage{
		{Name: "Google News - Business", URL: "https://news.google.com/topics/CAAqKggKEhAP-nZ_GqJEFQryfS9NqMEsqAEwkqKBBigBKkAP-nZ_GqJEFQryfS9NqMEsqAEwkqKBBg"},
		{Name: "CNBC Markets", URL: "https://www.cnbc.com/markets/"},
		{Name: "Bloomberg Markets", URL: "https://www.bloomberg.com/markets"},
	}
}

func defaultSearchKeywords() []string {
	return []string{
		"Federal Reserve",
		"US President",
		"interest rate",
		"inflation",
		"stock market",
		"exchange rate",
		"central bank",
		"monetary policy",
	}
}

func defaultPriorityKeywords() []string {
	return []string{
		// Central banks
		"Federal Reserve", "Fed", "interest rate", "central bank", "monetary policy", "rate cut", "rate hike",
		// Politics and policy
		"Trump", "President", "government", "policy",
		// Equity markets
		"stock", "stock market", "index", "Nasdaq", "NYSE", "Dow Jones", "S&P 500",
		// Macro indicators
		"inflation", "GDP", "unemployment", "CPI", "PPI",
		"earnings", "revenue", "profit",
		// Sectors and companies
		"Tesla", "Apple", "Microsoft", "Amazon", "Google",
		"Bitcoin", "crypto", "technology",
		"energy", "oil", "banking",
		// FX and rates
		"exchange rate", "yuan", "dollar", "euro",
		"bond", "Treasury", "yield",
		// Trade
		"trade", "tariff", "commerce",
		// Real estate
		"real estate", "property", "housing",
		// Market moves
		"market", "surge", "crash", "rally", "selloff",
	}
}

func defaultCategories() CategoryKeywords {
	return CategoryKeywords{
		PoliticalFigure: []string{
			"Trump", "Biden", "Xi Jinping", "Putin", "president", "white house", "congress", "senate",
		},
		MarketImpact: []string{
			"stock", "market", "tariff", "trade", "currency", "dollar", "rate", "tax", "sanction", "economy",
		},
		Geopolitical: []string{
			"middle east", "ukraine", "russia", "china", "taiwan", "iran", "israel",
			"war", "conflict", "military", "sanction", "opec",
			"oil", "crude", "gas", "energy",
			"dollar", "euro", "yuan", "yen", "currency", "exchange rate",
		},
		Financial: []string{
			"dow jones", "nasdaq", "s&p", "nyse", "shanghai", "hang seng", "ftse", "nikkei",
			"federal reserve", "fed", "central bank", "interest rate", "rate cut", "rate hike", "monetary",
			"inflation", "gdp", "cpi", "ppi", "unemployment", "jobs report",
			"earnings", "revenue", "profit", "dividend", "ipo",
			"stock", "bond", "treasury", "yield", "etf", "futures",
		},
	}
}

// Default returns a Config fully populated with the built-in lists.
func Default() *Config {
	return &Config{
		Feeds:            defaultFeeds(),
		ScrapePages:      defaultScrapePages(),
		SearchKeywords:   defaultSearchKeywords(),
		PriorityKeywords: defaultPriorityKeywords(),
		Categories:       defaultCategories(),
	}
}
