package reconio

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/io/scanio"
	"golang.org/x/image/draw"
)

const (
	thumbMaxWidth  = 400
	thumbMaxHeight = 300
)

// processImages uploads sample photographs: scale down, put to object
// storage, then insert the image row pointing at the public URL. Images for
// samples not yet in the store are skipped; a failed row insert removes the
// uploaded object again.
func (r *reconio) processImages(
	ctx context.Context, man scanio.Manifest,
) (recon.CategoryReport, error) {
	rep := recon.CategoryReport{Category: recon.CatImage}
	if r.images == nil && len(man.Images) > 0 {
		slog.Warn("Image store not configured, skipping images",
			"count", len(man.Images))
		for _, img := range man.Images {
			rep.Add(recon.FileResult{
				Path: img.Path, Outcome: recon.Skipped,
				Reason: "image store not configured",
			})
		}
		return rep, nil
	}

	for _, img := range man.Images {
		res := r.processImage(ctx, man, img)
		rep.Add(res)
		if res.Err != nil && r.batchFatal(ctx, res.Err) {
			return rep, res.Err
		}
	}
	return rep, nil
}

func (r *reconio) processImage(
	ctx context.Context, man scanio.Manifest, img scanio.ImageFile,
) recon.FileResult {
	if img.ImageType == "" {
		return recon.FileResult{
			Path: img.Path, Outcome: recon.Skipped, Reason: "no image type tag",
		}
	}
	if r.alreadyUploaded(recon.CatImage, img.Path) {
		return recon.FileResult{
			Path: img.Path, Outcome: recon.Skipped, Reason: "already uploaded",
		}
	}

	smp, err := r.st.ResolveSample(ctx, img.SampleNumber)
	if err != nil {
		return fileResult(img.Path, 0, err)
	}
	if smp == nil {
		return recon.FileResult{
			Path: img.Path, Outcome: recon.Skipped,
			Reason: "sample " + img.SampleNumber + " not in store",
		}
	}

	body, err := thumbnailJPEG(man.Abs(img.Path))
	if err != nil {
		return fileResult(img.Path, 0, err)
	}

	key := path.Join(r.cfg.S3Folder, filepath.Base(img.Path))
	url, err := r.images.Put(ctx, key, "image/jpeg", bytes.NewReader(body))
	if err != nil {
		return fileResult(img.Path, 0, err)
	}

	n, err := r.transact(ctx, func(ctx context.Context, tx recon.Tx) (int, error) {
		ins := recon.NewInsert(recon.TblImage)
		ins.Set("sample_id", smp.ID)
		ins.Set("image_path", url)
		ins.Set("image_type", img.ImageType)
		if _, err := tx.Apply(ctx, ins); err != nil {
			return 0, err
		}
		return 1, nil
	})
	if err != nil {
		if delErr := r.images.Delete(ctx, key); delErr != nil {
			slog.Warn("Cannot remove orphaned image object",
				"key", key, "error", delErr)
		}
		return fileResult(img.Path, 0, err)
	}

	slog.Info("Uploaded image", "file", img.Path, "url", url)
	r.recordUpload(recon.CatImage, img.Path)
	return fileResult(img.Path, n, nil)
}

// thumbnailJPEG scales an image to fit the thumbnail bounds, preserving
// aspect ratio, and re-encodes it as JPEG.
func thumbnailJPEG(srcPath string) ([]byte, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return nil, &recon.ParseError{Msg: "cannot open image", Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &recon.ParseError{Msg: "cannot decode image", Err: err}
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > thumbMaxWidth || h > thumbMaxHeight {
		scale := float64(thumbMaxWidth) / float64(w)
		if s := float64(thumbMaxHeight) / float64(h); s < scale {
			scale = s
		}
		dw, dh := int(float64(w)*scale), int(float64(h)*scale)
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, src, nil); err != nil {
		return nil, &recon.ParseError{Msg: "cannot encode thumbnail", Err: err}
	}
	return buf.Bytes(), nil
}
