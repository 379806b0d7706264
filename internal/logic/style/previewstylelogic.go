// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package style

import (
	"context"
	"encoding/base64"

	"github.com/joeblew999/plat-titlecard/internal/errorx"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"
	"github.com/joeblew999/plat-titlecard/pkg/typeface"

	"github.com/zeromicro/go-zero/core/logx"
)

type PreviewStyleLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPreviewStyleLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PreviewStyleLogic {
	return &PreviewStyleLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *PreviewStyleLogic) PreviewStyle(req *types.PreviewStyleRequest) (resp *types.PreviewStyleResponse, err error) {
	s, ok := l.svcCtx.Registry.Get(req.Id)
	if !ok {
		return nil, errorx.ErrNotFound("card type not found: " + req.Id)
	}

	img, err := typeface.RenderPreview(s, typeface.PreviewOptions{Text: req.Text})
	if err != nil {
		return nil, errorx.ErrInternal("failed to render preview: " + err.Error())
	}

	png, err := typeface.EncodePNG(img)
	if err != nil {
		return nil, errorx.ErrInternal("failed to encode preview: " + err.Error())
	}

	bounds := img.Bounds()
	return &types.PreviewStyleResponse{
		Style:  s.Identifier,
		Image:  base64.StdEncoding.EncodeToString(png),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
