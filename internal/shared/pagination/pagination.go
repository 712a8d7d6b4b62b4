// Package pagination は一覧APIのページング計算を提供します。
package pagination

import "strconv"

const (
	// DefaultPage は不正なページ指定時のフォールバックです。
	DefaultPage = 1
	// DefaultPerPage は不正な件数指定時のフォールバックです。
	DefaultPerPage = 10
)

// Normalize はクエリ文字列のページ番号と件数を正規化します。
// 数値でない値や1未満の値はデフォルト（1ページ目、10件）に丸められます。
func Normalize(page, perPage string) (int, int) {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = DefaultPage
	}
	size, err := strconv.Atoi(perPage)
	if err != nil || size < 1 {
		size = DefaultPerPage
	}
	return p, size
}

// Offset は正規化済みのページ番号と件数からスキップ件数を計算します。
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// TotalPages は総件数から総ページ数を計算します。結果は最低1になります。
func TotalPages(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		return 1
	}
	return pages
}
