package search

import "strings"

// BookRecord одна запись каталога, нормализованная для отображения
type BookRecord struct {
	ID          string
	Title       string
	Authors     []string
	Description string
	Thumbnail   string
}

// FullAuthors склеивает авторов для простого рендеринга
func (b BookRecord) FullAuthors() string {
	return strings.Join(b.Authors, ", ")
}

// ResultSet содержит результат одного успешного поиска
type ResultSet struct {
	Total int
	Books []BookRecord
}

func (rs ResultSet) Len() int { return len(rs.Books) }

func (rs ResultSet) Empty() bool { return len(rs.Books) == 0 }
