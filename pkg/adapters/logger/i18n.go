package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Export level messages (info)
		"Building file %s": "ファイル %s を作成中",
		"File %s is ready": "ファイル %s の作成が完了しました",

		// Pipeline component
		"Started stage %d/%d: %s":                "ステージ %d/%d を開始: %s",
		"Stage %d (%s) exited with error: %s":    "ステージ %d (%s) がエラーで終了しました: %s",
		"Generating GIF frames...":               "GIFフレームを生成中...",
		"Optimizing the GIF with ImageMagick...": "ImageMagickでGIFを最適化中...",
		"Optimizing GIF with ImageMagick...":     "ImageMagickでGIFを最適化中...",

		// Warnings
		"Clip has no mask, exporting opaque frames": "クリップにマスクがないため、不透明フレームで出力します",
	})
}
