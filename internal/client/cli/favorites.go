package cli

import "context"

func (a *App) AddFavorite(ctx context.Context, args []string) error {
	id, err := a.targetID(args)
	if err != nil {
		return err
	}
	if err := a.favs.Add(ctx, id); err != nil {
		return err
	}
	a.printf("차량 %d을(를) 찜했습니다.\n", id)
	return nil
}

func (a *App) RemoveFavorite(ctx context.Context, args []string) error {
	id, err := a.targetID(args)
	if err != nil {
		return err
	}
	if err := a.favs.Remove(ctx, id); err != nil {
		return err
	}
	a.printf("차량 %d의 찜을 해제했습니다.\n", id)
	return nil
}

// Favorites lists the favorites from the server, which also reconciles the
// local cache.
func (a *App) Favorites(ctx context.Context, _ []string) error {
	items, err := a.favs.List(ctx)
	if err != nil {
		return err
	}
	all := make(map[int64]bool, len(items))
	for _, it := range items {
		all[it.ID] = true
	}
	renderSummaries(a.out, items, all)
	return nil
}
