// Package main provides localization for the gifpipe CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Stream video frames through external encoders into animated GIFs.": "動画フレームを外部エンコーダへストリーミングしてアニメーションGIFを作成します。",

		// Convert command
		"Convert a directory of image frames into an animated GIF.": "画像フレームのディレクトリをアニメーションGIFに変換",

		// Demo command
		"Render a synthetic test clip and export it as an animated GIF.": "合成テストクリップを描画してアニメーションGIFとして出力",

		// Doctor command
		"Check which external encoder binaries are available.":            "利用可能な外部エンコーダを確認",
		"%s: not found (%v)":                                              "%s: 見つかりません (%v)",
		"No external encoder found; only the --native backend will work.": "外部エンコーダが見つかりません。--native バックエンドのみ利用できます。",

		// Version command
		"Show version information": "バージョン情報を表示",
		"gifpipe version %s":       "gifpipe バージョン %s",

		// Runtime messages
		"Converting %s to %s...":                       "%s を %s に変換中...",
		"Rendering %dx%d demo clip (%gs at %g fps)...": "%dx%d のデモクリップを描画中 (%g秒, %g fps)...",
		"Output saved to %s":                           "出力を %s に保存しました",
	})
}
