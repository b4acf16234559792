package contentbox

import (
	"context"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
)

// DetectShadows returns the shadow mask of the reference bitmap bw: the
// large uniformly dark bands left by the binding and the page edges.
//
// Seeds are what survives an opening with a long horizontal and a tall
// vertical brick. The seeds are grown into a slightly dilated bw so that
// the whole band is reached, and the overshoot is cut back by intersecting
// with bw. Finally dark regions that merely look like shadows, such as a
// black table header with white lettering, are screened out.
func DetectShadows(ctx context.Context, bw *bitmap.Bitmap, opts Options, dbg diagnostics) (*bitmap.Bitmap, error) {
	hor := bitmap.Open(bw, opts.HorShadowBrick, bitmap.Black)
	dbg.bitmap("hor_shadows_seed", hor)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	ver := bitmap.Open(bw, opts.VerShadowBrick, bitmap.Black)
	dbg.bitmap("ver_shadows_seed", ver)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	seed := bitmap.Or(hor, ver)
	dbg.bitmap("shadows_seed", seed)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	dilated := bitmap.Dilate(bw, opts.BridgeBrick, bitmap.White)
	dbg.bitmap("dilated", dilated)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	grown := bitmap.SeedFill(seed, dilated, bitmap.Conn8)
	dbg.bitmap("shadows_dilated", grown)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	shadows := bitmap.And(grown, bw)
	dbg.bitmap("shadows", shadows)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	filtered, err := filterShadows(ctx, shadows, opts, dbg)
	if err != nil {
		return nil, err
	}
	dbg.bitmap("filtered_shadows", filtered)
	return filtered, nil
}

// filterShadows removes from shadows the regions that are dark but busy. An
// opening with a small brick erases the thin white-on-black detail of such
// regions; where enough of it is erased along a wide enough stretch, the
// region it belongs to is not a shadow.
func filterShadows(ctx context.Context, shadows *bitmap.Bitmap, opts Options, dbg diagnostics) (*bitmap.Bitmap, error) {
	opened := bitmap.Open(shadows, opts.ShadowOpenBrick, bitmap.Black)
	dbg.bitmap("opened", opened)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	becameWhite := bitmap.Subtract(shadows, opened)
	dbg.bitmap("became_white", becameWhite)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	closed := bitmap.Close(becameWhite, opts.ShadowCloseBrick, bitmap.White)
	dbg.bitmap("closed", closed)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	reopened := bitmap.Open(closed, opts.ShadowReopenBrick, bitmap.White)
	dbg.bitmap("reopened", reopened)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	nonShadows := bitmap.SeedFill(reopened, shadows, bitmap.Conn8)
	dbg.bitmap("non_shadows", nonShadows)
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	return bitmap.Subtract(shadows, nonShadows), nil
}
