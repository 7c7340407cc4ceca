package news

type Article struct {
	Title       string
	Content     string
	Author      string
	PublishedAt string
	Tags        []string
}

type NewsClient interface {
	Fetch(limit int) ([]Article, error)
	Name() string
}
